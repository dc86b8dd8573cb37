package powerflex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayloadBareList(t *testing.T) {
	payload, err := DecodePayload([]byte(`[{"session_kwh": 1}, {"session_kwh": 2}]`))
	require.NoError(t, err)

	assert.Len(t, payload.Rows, 2)
	assert.Equal(t, 2, payload.TotalCount)
	assert.False(t, payload.Paged)
}

func TestDecodePayloadRowsObject(t *testing.T) {
	payload, err := DecodePayload([]byte(`{
		"rows": [{"session_kwh": 1}, {"session_kwh": 2}],
		"total_count": 40,
		"page": 2,
		"limit": 2
	}`))
	require.NoError(t, err)

	assert.Len(t, payload.Rows, 2)
	assert.Equal(t, 40, payload.TotalCount)
	assert.Equal(t, 2, payload.Page)
	assert.Equal(t, 2, payload.Limit)
	assert.True(t, payload.Paged)
}

func TestDecodePayloadShapesAgree(t *testing.T) {
	rows := `[{"session_id": "a", "session_kwh": 0.5}, {"session_id": "b"}]`

	bare, err := DecodePayload([]byte(rows))
	require.NoError(t, err)
	wrapped, err := DecodePayload([]byte(`{"rows": ` + rows + `}`))
	require.NoError(t, err)

	require.Equal(t, len(bare.Rows), len(wrapped.Rows))
	for i := range bare.Rows {
		assert.JSONEq(t, string(bare.Rows[i]), string(wrapped.Rows[i]))
	}
}

func TestDecodePayloadRejectsOtherShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"string", `"oops"`},
		{"number", `42`},
		{"boolean", `true`},
		{"null", `null`},
		{"object without rows", `{"total_count": 3}`},
		{"empty body", ``},
		{"truncated json", `[{"a":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePayload([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDecodePayloadEmptyRows(t *testing.T) {
	payload, err := DecodePayload([]byte(`{"rows": []}`))
	require.NoError(t, err)
	assert.Empty(t, payload.Rows)
	assert.True(t, payload.Paged)
}
