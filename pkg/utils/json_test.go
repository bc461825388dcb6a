package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type payload struct {
	GroupID *string `json:"group_id,omitempty"`
	Year    int     `json:"year"`
}

func TestWriteJSON(t *testing.T) {
	recorder := httptest.NewRecorder()

	err := WriteJSON(recorder, http.StatusAccepted, map[string]any{"message": "ok"})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"ok"}`, recorder.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	testCases := []struct {
		name        string
		body        string
		expectError bool
		expected    payload
	}{
		{
			name:     "corpo válido com ponteiro preenchido",
			body:     `{"group_id":"grp1","year":2025}`,
			expected: payload{GroupID: ptr("grp1"), Year: 2025},
		},
		{
			name:     "campo opcional ausente fica nil",
			body:     `{"year":2026}`,
			expected: payload{Year: 2026},
		},
		{
			name:        "corpo malformado retorna erro",
			body:        `{"year":`,
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/qualquer", strings.NewReader(tc.body))

			var got payload
			err := DecodeJSON(req, &got)

			if tc.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func ptr(s string) *string { return &s }
