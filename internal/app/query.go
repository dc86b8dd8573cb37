package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/chargewatch/internal/config"
	"github.com/blackwell-systems/chargewatch/internal/powerflex"
	"github.com/blackwell-systems/chargewatch/internal/session"
)

// queryFlags holds the session-query flags shared by the data commands.
type queryFlags struct {
	acn           string
	account       string
	anonymize     bool
	includeActive bool
	sortBy        string
	sortOrder     string
	limit         int
	page          int
	rangeName     string
	from          string
	to            string
	input         string
	noPrompt      bool
}

// register adds the shared query flags to a command.
func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.acn, "acn", "", "ACN to query (default from config)")
	cmd.Flags().StringVar(&f.account, "account", "", "Account to query (default from config)")
	cmd.Flags().BoolVar(&f.anonymize, "anonymize", false, "Request anonymized user identities")
	cmd.Flags().BoolVar(&f.includeActive, "include-active", false, "Include sessions still in progress")
	cmd.Flags().StringVar(&f.sortBy, "sort-by", "session_start_time", "API sort field")
	cmd.Flags().StringVar(&f.sortOrder, "sort-order", "DESC", "API sort order (ASC or DESC)")
	cmd.Flags().IntVar(&f.limit, "limit", 25, "Page size")
	cmd.Flags().IntVar(&f.page, "page", 1, "Page number")
	cmd.Flags().StringVar(&f.rangeName, "range", "today", "Date range: today, week, month, or custom")
	cmd.Flags().StringVar(&f.from, "from", "", "Custom range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "Custom range end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.input, "input", "", "Read the payload from a JSON file instead of the API")
	cmd.Flags().BoolVar(&f.noPrompt, "no-prompt", false, "Never prompt; use flags and config defaults")
}

// interactive reports whether prompts should run: stdin is a terminal,
// --no-prompt is absent, and the data comes from the API rather than a
// file.
func (f *queryFlags) interactive() bool {
	if f.noPrompt || f.input != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdin.Fd())
}

// resolve builds the API query from config defaults, prompts (when
// interactive), and flags. Flags win over prompt defaults.
func (f *queryFlags) resolve(cfg *config.Config, now time.Time) (powerflex.Query, error) {
	q := powerflex.DefaultQuery()
	q.ACN = cfg.DefaultACN
	q.Account = cfg.DefaultAccount

	if f.interactive() {
		p := newPrompter(os.Stdin, os.Stdout)
		q.ACN = p.stringVal("Enter ACN", q.ACN)
		q.Account = p.stringVal("Enter account", q.Account)
		q.Anonymize = p.boolVal("Anonymize?", f.anonymize)
		q.IncludeActive = p.boolVal("Include active sessions?", f.includeActive)
		q.SortBy = p.stringVal("Sort by", f.sortBy)
		q.SortOrder = p.stringVal("Sort order (ASC/DESC)", f.sortOrder)
		q.Limit = p.intVal("Limit", f.limit)
		q.Page = p.intVal("Page", f.page)

		from, to, err := p.dateRange(now)
		if err != nil {
			return q, err
		}
		q.FromMs = from.UnixMilli()
		q.ToMs = to.UnixMilli()
	} else {
		q.Anonymize = f.anonymize
		q.IncludeActive = f.includeActive
		q.SortBy = f.sortBy
		q.SortOrder = f.sortOrder
		q.Limit = f.limit
		q.Page = f.page

		from, to, err := f.resolveRange(now)
		if err != nil {
			return q, err
		}
		q.FromMs = from.UnixMilli()
		q.ToMs = to.UnixMilli()
	}

	if f.acn != "" {
		q.ACN = f.acn
	}
	if f.account != "" {
		q.Account = f.account
	}

	return q, nil
}

// resolveRange turns the --range/--from/--to flags into bounds.
func (f *queryFlags) resolveRange(now time.Time) (time.Time, time.Time, error) {
	if f.rangeName == "custom" || f.from != "" || f.to != "" {
		if f.from == "" || f.to == "" {
			return time.Time{}, time.Time{}, fmt.Errorf("custom range requires both --from and --to")
		}
		from, err := time.ParseInLocation("2006-01-02", f.from, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date: %w", err)
		}
		to, err := time.ParseInLocation("2006-01-02", f.to, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to date: %w", err)
		}
		if to.Before(from) {
			return time.Time{}, time.Time{}, fmt.Errorf("--to is before --from")
		}
		return from, to, nil
	}
	return rangeBounds(f.rangeName, now)
}

// loadPayload fetches the session payload from the API helper, or reads it
// from --input.
func (f *queryFlags) loadPayload(ctx context.Context, cfg *config.Config, q powerflex.Query) (*powerflex.Payload, error) {
	if f.input != "" {
		debugf("loading payload from %s", f.input)
		return powerflex.LoadPayloadFile(f.input)
	}

	client := powerflex.NewClient(cfg.HelperCommand, cfg.APIBaseURL, cfg.FetchTimeout())
	if flagDebug {
		client.Debug = os.Stderr
	}
	return client.FetchSessions(ctx, q)
}

// pipeline runs normalize and classify over a payload, reporting the
// filtered counts in debug mode.
func pipeline(payload *powerflex.Payload, opts session.ClassifyOptions) (session.NormalizeResult, []session.Classified) {
	normalized := session.Normalize(payload.Rows)
	debugf("normalized %d of %d rows (%d malformed)",
		len(normalized.Records), normalized.TotalRaw, normalized.Malformed)

	classified := session.ClassifyAll(normalized.Records, opts)
	return normalized, classified
}
