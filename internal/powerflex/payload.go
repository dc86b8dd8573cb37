package powerflex

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// pagedResponse is the object shape of the API response.
type pagedResponse struct {
	Rows       *[]json.RawMessage `json:"rows"`
	TotalCount int                `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

// DecodePayload resolves the raw response body into a Payload. The two
// accepted shapes are branched on explicitly: a bare array of rows, or an
// object carrying a "rows" key. Anything else is an error naming the shape
// that was actually received.
func DecodePayload(data []byte) (*Payload, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty response body")
	}

	switch trimmed[0] {
	case '[':
		var rows []json.RawMessage
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, fmt.Errorf("decoding session list: %w", err)
		}
		return &Payload{Rows: rows, TotalCount: len(rows)}, nil

	case '{':
		var resp pagedResponse
		if err := json.Unmarshal(trimmed, &resp); err != nil {
			return nil, fmt.Errorf("decoding paged response: %w", err)
		}
		if resp.Rows == nil {
			return nil, fmt.Errorf(`unexpected response shape: object without a "rows" key`)
		}
		total := resp.TotalCount
		if total == 0 {
			total = len(*resp.Rows)
		}
		return &Payload{
			Rows:       *resp.Rows,
			TotalCount: total,
			Page:       resp.Page,
			Limit:      resp.Limit,
			Paged:      true,
		}, nil

	default:
		return nil, fmt.Errorf("unexpected response shape: expected a list or an object with a \"rows\" key, got %s", shapeName(trimmed))
	}
}

// shapeName describes a JSON value's type for error messages.
func shapeName(trimmed []byte) string {
	switch trimmed[0] {
	case '"':
		return "a string"
	case 't', 'f':
		return "a boolean"
	case 'n':
		return "null"
	default:
		return "a number or malformed JSON"
	}
}

// LoadPayloadFile reads a payload from a local file instead of the API.
// Used by the --input flag for offline analysis and testing.
func LoadPayloadFile(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading payload file: %w", err)
	}
	payload, err := DecodePayload(data)
	if err != nil {
		return nil, fmt.Errorf("payload file %s: %w", path, err)
	}
	return payload, nil
}
