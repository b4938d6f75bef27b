package shared

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type target struct {
		GameType string `json:"gameType"`
		Count    int    `json:"count"`
	}

	tests := []struct {
		name        string
		requestBody string
		wantErr     bool
		errContains string
	}{
		{
			name:        "valid json",
			requestBody: `{"gameType": "word-match", "count": 3}`,
		},
		{
			name:        "invalid json",
			requestBody: `{"gameType": "word-match", "count": 3,}`, // trailing comma
			wantErr:     true,
			errContains: "invalid character",
		},
		{
			name:        "empty body",
			requestBody: "",
			wantErr:     true,
			errContains: "request body is empty",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(
				http.MethodPost,
				"/test",
				bytes.NewBufferString(tc.requestBody),
			)

			var got target
			err := DecodeJSON(req, &got)

			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "word-match", got.GameType)
			assert.Equal(t, 3, got.Count)
		})
	}
}

// errorReader fails every read.
type errorReader struct{}

func (er errorReader) Read(p []byte) (n int, err error) {
	return 0, io.ErrUnexpectedEOF
}

func TestDecodeJSONWithReadError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/test", errorReader{})

	var target struct{}
	err := DecodeJSON(req, &target)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected EOF")
}

func TestDecodeJSONTooLarge(t *testing.T) {
	body := `{"text": "` + strings.Repeat("a", MaxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))

	var target struct {
		Text string `json:"text"`
	}
	err := DecodeJSON(req, &target)

	var maxErr *http.MaxBytesError
	assert.ErrorAs(t, err, &maxErr)
}

// ValidatableStruct implements its own Validate method.
type ValidatableStruct struct {
	Name string `validate:"required"`
	Age  int    `validate:"gte=18"`
}

func (v *ValidatableStruct) Validate() error {
	if v.Name == "invalid" {
		return &validator.ValidationErrors{}
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	type tagged struct {
		Message string `validate:"required"`
	}

	tests := []struct {
		name    string
		req     any
		wantErr bool
	}{
		{
			name:    "valid request with validator",
			req:     &ValidatableStruct{Name: "test", Age: 20},
			wantErr: false,
		},
		{
			name:    "invalid request with validator",
			req:     &ValidatableStruct{Name: "invalid", Age: 20},
			wantErr: true,
		},
		{
			name:    "struct tags satisfied",
			req:     &tagged{Message: "hi"},
			wantErr: false,
		},
		{
			name:    "struct tags violated",
			req:     &tagged{},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRequest(tc.req)

			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
