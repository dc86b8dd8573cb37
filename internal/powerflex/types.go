// Package powerflex talks to the charging-session REST API through the
// site's authenticated curl helper. It owns request construction, the
// helper invocation, and resolution of the two payload shapes the API
// returns; everything downstream sees a single Payload type.
package powerflex

import (
	"encoding/json"
	"fmt"
	"time"
)

// Query holds the session-query parameters for one fetch.
type Query struct {
	ACN           string
	Account       string
	Anonymize     bool
	IncludeActive bool
	SortBy        string
	SortOrder     string
	Limit         int
	Page          int
	FromMs        int64
	ToMs          int64
}

// DefaultQuery returns the query defaults the interactive prompts offer.
func DefaultQuery() Query {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return Query{
		ACN:       "0021",
		Account:   "16",
		SortBy:    "session_start_time",
		SortOrder: "DESC",
		Limit:     25,
		Page:      1,
		FromMs:    midnight.UnixMilli(),
		ToMs:      now.UnixMilli(),
	}
}

// Payload is the resolved API response. The API returns either a bare JSON
// array of session rows or an object wrapping the rows with pagination
// metadata; both resolve to this one shape at the decode boundary.
type Payload struct {
	Rows       []json.RawMessage `json:"rows"`
	TotalCount int               `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`

	// Paged reports whether the response carried pagination metadata
	// (the object shape) or was a bare list.
	Paged bool `json:"paged"`
}

// FetchError is a fatal failure to obtain or parse the API response. It
// carries the attempted request so the failure is diagnosable.
type FetchError struct {
	URL    string
	Query  Query
	Stderr string
	Err    error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("fetching sessions for acn=%s acc=%s page=%d: %v",
		e.Query.ACN, e.Query.Account, e.Query.Page, e.Err)
	if e.Stderr != "" {
		msg += " (" + e.Stderr + ")"
	}
	return msg
}

func (e *FetchError) Unwrap() error { return e.Err }
