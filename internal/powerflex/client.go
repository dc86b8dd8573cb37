package powerflex

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Client fetches session data through the device-manager curl helper,
// which handles authentication against the API.
type Client struct {
	// Command is the helper executable. It receives curl-style arguments
	// and must print the raw JSON response on stdout.
	Command string

	// BaseURL is the API root, e.g. https://api.powerflex.io.
	BaseURL string

	// Timeout bounds one helper invocation. Zero means no extra bound
	// beyond the caller's context.
	Timeout time.Duration

	// Debug, when non-nil, receives request diagnostics.
	Debug io.Writer
}

// NewClient builds a client for the given helper command and API root.
func NewClient(command, baseURL string, timeout time.Duration) *Client {
	return &Client{Command: command, BaseURL: baseURL, Timeout: timeout}
}

// SessionsURL builds the public-sessions request URL for a query.
func (c *Client) SessionsURL(q Query) string {
	params := url.Values{}
	params.Set("acc", q.Account)
	params.Set("anonymize", strconv.FormatBool(q.Anonymize))
	params.Set("includeActive", strconv.FormatBool(q.IncludeActive))
	params.Set("sortBy", q.SortBy)
	params.Set("sortOrder", q.SortOrder)
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("page", strconv.Itoa(q.Page))
	params.Add("date", fmt.Sprintf("gte:%d", q.FromMs))
	params.Add("date", fmt.Sprintf("lte:%d", q.ToMs))

	return fmt.Sprintf("%s/v1/public/sessions/acn/%s?%s", c.BaseURL, q.ACN, params.Encode())
}

// FetchSessions runs one blocking fetch and resolves the payload. Helper
// failure, timeout, or a non-JSON body all surface as a *FetchError
// carrying the attempted request; there is no retry.
func (c *Client) FetchSessions(ctx context.Context, q Query) (*Payload, error) {
	reqURL := c.SessionsURL(q)

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	if c.Debug != nil {
		fmt.Fprintf(c.Debug, "fetch: %s %s\n", c.Command, reqURL)
	}

	cmd := exec.CommandContext(ctx, c.Command,
		"-s", "-X", "GET", reqURL,
		"-H", "accept: application/json",
		"-H", "Content-Type: application/json",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, &FetchError{
			URL:    reqURL,
			Query:  q,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}

	payload, err := DecodePayload(stdout.Bytes())
	if err != nil {
		return nil, &FetchError{URL: reqURL, Query: q, Err: err}
	}

	if c.Debug != nil {
		fmt.Fprintf(c.Debug, "fetch: %d rows (paged=%v, total=%d)\n",
			len(payload.Rows), payload.Paged, payload.TotalCount)
	}

	return payload, nil
}
