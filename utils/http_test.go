package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	t.Run("successful write", func(t *testing.T) {
		w := httptest.NewRecorder()
		data := map[string]string{"message": "test"}

		err := WriteJSON(w, http.StatusOK, data)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var response map[string]string
		err = json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		assert.Equal(t, "test", response["message"])
	})

	t.Run("nil data", func(t *testing.T) {
		w := httptest.NewRecorder()

		err := WriteJSON(w, http.StatusNoContent, nil)
		require.NoError(t, err)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestWriteOK(t *testing.T) {
	t.Run("wraps data in envelope", func(t *testing.T) {
		w := httptest.NewRecorder()

		err := WriteOK(w, map[string]int64{"deletedCount": 1})
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":{"deletedCount":1}}`, w.Body.String())
	})

	t.Run("empty list is kept", func(t *testing.T) {
		w := httptest.NewRecorder()

		err := WriteOK(w, []map[string]any{})
		require.NoError(t, err)

		assert.JSONEq(t, `{"data":[]}`, w.Body.String())
	})
}

func TestWriteCreated(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteCreated(w, map[string]string{"insertedId": "123"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response SuccessResponse
	err = json.NewDecoder(w.Body).Decode(&response)
	require.NoError(t, err)

	dataMap := response.Data.(map[string]interface{})
	assert.Equal(t, "123", dataMap["insertedId"])
}

func TestWriteText(t *testing.T) {
	w := httptest.NewRecorder()

	require.NoError(t, WriteText(w, http.StatusOK, "Hello World"))

	assert.Equal(t, "Hello World", w.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
}

func TestWriteBadRequest(t *testing.T) {
	w := httptest.NewRecorder()
	details := map[string]interface{}{"email": "invalid format"}

	err := WriteBadRequest(w, "Validation failed", details)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response ErrorResponse
	err = json.NewDecoder(w.Body).Decode(&response)
	require.NoError(t, err)

	assert.Equal(t, "bad_request", response.Error)
	assert.Equal(t, "Validation failed", response.Message)
	assert.Equal(t, "invalid format", response.Details["email"])
}

func TestDefaultErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		write       func(http.ResponseWriter) error
		wantStatus  int
		wantError   string
		wantMessage string
	}{
		{
			name:        "unauthorized",
			write:       func(w http.ResponseWriter) error { return WriteUnauthorized(w, "") },
			wantStatus:  http.StatusUnauthorized,
			wantError:   "unauthorized",
			wantMessage: "Invalid or missing credentials",
		},
		{
			name:        "forbidden",
			write:       func(w http.ResponseWriter) error { return WriteForbidden(w, "") },
			wantStatus:  http.StatusForbidden,
			wantError:   "forbidden",
			wantMessage: "Access forbidden",
		},
		{
			name:        "not found",
			write:       func(w http.ResponseWriter) error { return WriteNotFound(w, "") },
			wantStatus:  http.StatusNotFound,
			wantError:   "not_found",
			wantMessage: "Resource not found",
		},
		{
			name:        "internal",
			write:       func(w http.ResponseWriter) error { return WriteInternalServerError(w, "") },
			wantStatus:  http.StatusInternalServerError,
			wantError:   "internal_error",
			wantMessage: "Internal server error",
		},
		{
			name:        "unavailable",
			write:       func(w http.ResponseWriter) error { return WriteServiceUnavailable(w, "", nil) },
			wantStatus:  http.StatusServiceUnavailable,
			wantError:   "unavailable",
			wantMessage: "Service unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			require.NoError(t, tt.write(w))

			assert.Equal(t, tt.wantStatus, w.Code)
			var response ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, tt.wantError, response.Error)
			assert.Equal(t, tt.wantMessage, response.Message)
		})
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		status    int
		wantError string
	}{
		{http.StatusBadRequest, "bad_request"},
		{http.StatusUnauthorized, "unauthorized"},
		{http.StatusForbidden, "forbidden"},
		{http.StatusNotFound, "not_found"},
		{http.StatusMethodNotAllowed, "method_not_allowed"},
		{http.StatusServiceUnavailable, "unavailable"},
		{http.StatusInternalServerError, "internal_error"},
		{http.StatusTeapot, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			w := httptest.NewRecorder()
			require.NoError(t, WriteError(w, tt.status, "msg", nil))

			assert.Equal(t, tt.status, w.Code)
			var response ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, tt.wantError, response.Error)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "object", body: `{"name":"Bat"}`},
		{name: "empty", body: ``, wantErr: "empty"},
		{name: "malformed", body: `{"name":`, wantErr: "invalid JSON"},
		{name: "trailing value", body: `{"a":1}{"b":2}`, wantErr: "single JSON value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var out map[string]any

			err := DecodeJSON(httptest.NewRecorder(), req, &out)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Bat", out["name"])
		})
	}

	t.Run("oversized body", func(t *testing.T) {
		big := `{"photo":"` + strings.Repeat("x", MaxBodyBytes) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))
		var out map[string]any

		assert.Error(t, DecodeJSON(httptest.NewRecorder(), req, &out))
	})
}
