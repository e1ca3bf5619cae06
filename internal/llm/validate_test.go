package llm

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileSchema() *Schema {
	return &Schema{
		Name: "test-profile",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"age":   map[string]any{"type": "integer", "minimum": 0},
				"style": map[string]any{"type": "string", "enum": []any{"visual", "practical"}},
			},
			"required": []any{"name", "age"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"all fields", `{"name":"Ada","age":10,"style":"visual"}`, false},
		{"optional omitted", `{"name":"Bob","age":8}`, false},
		{"missing required", `{"name":"Cy"}`, true},
		{"wrong type", `{"name":"Di","age":"ten"}`, true},
		{"enum violation", `{"name":"Ed","age":3,"style":"auditory"}`, true},
		{"not json", `nope`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(profileSchema(), json.RawMessage(tt.raw))
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			var inv *ErrInvalidResponse
			require.True(t, errors.As(err, &inv), "got %T", err)
			assert.Equal(t, tt.raw, string(inv.Content))
		})
	}
}

func TestValidateResponseNilSchema(t *testing.T) {
	assert.NoError(t, validateResponse(nil, json.RawMessage(`anything`)))
}

func TestFinishRejectsTruncatedStructuredOutput(t *testing.T) {
	_, err := finish(Request{Schema: profileSchema()}, &Response{
		Content:    json.RawMessage(`{"name":"A`),
		StopReason: "max_tokens",
	})
	var maxTok *ErrMaxTokensExceeded
	assert.True(t, errors.As(err, &maxTok))
}

func TestClassifyStatus(t *testing.T) {
	base := errors.New("boom")

	var rl *ErrRateLimit
	assert.True(t, errors.As(classifyStatus(429, base), &rl))

	var unavail *ErrProviderUnavailable
	assert.True(t, errors.As(classifyStatus(503, base), &unavail))
	assert.ErrorIs(t, classifyStatus(400, base), base)
}
