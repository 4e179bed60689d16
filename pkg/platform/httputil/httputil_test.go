package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dErrors "counsel/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	t.Run("internal error omits description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeInternal, "redis failed"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "internal_error" {
			t.Fatalf("expected error code internal_error, got %q", body["error"])
		}
		if _, ok := body["error_description"]; ok {
			t.Fatalf("expected error_description to be omitted for internal errors")
		}
	})

	t.Run("bad request includes description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid input"))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "bad_request" {
			t.Fatalf("expected error code bad_request, got %q", body["error"])
		}
		if body["error_description"] != "invalid input" {
			t.Fatalf("expected error_description to be returned for bad request")
		}
	})
}

type stubRequest struct {
	Objective string `json:"objective"`
}

func (r *stubRequest) Validate() error {
	if r.Objective == "" {
		return dErrors.New(dErrors.CodeValidation, "objective is required")
	}
	return nil
}

func TestDecodeAndPrepare(t *testing.T) {
	t.Run("malformed JSON returns bad request", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/advise", strings.NewReader("{"))

		req, ok := DecodeAndPrepare[stubRequest](w, r, nil, r.Context(), "req-1")
		if ok || req != nil {
			t.Fatalf("expected decode failure")
		}
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("validation failure writes domain error", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/advise", strings.NewReader(`{}`))

		_, ok := DecodeAndPrepare[stubRequest](w, r, nil, r.Context(), "req-2")
		if ok {
			t.Fatalf("expected validation failure")
		}
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, w.Code)
		}
	})

	t.Run("valid body returns prepared request", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/advise", strings.NewReader(`{"objective":"grow revenue"}`))

		req, ok := DecodeAndPrepare[stubRequest](w, r, nil, r.Context(), "req-3")
		if !ok {
			t.Fatalf("expected success")
		}
		if req.Objective != "grow revenue" {
			t.Fatalf("unexpected objective %q", req.Objective)
		}
	})
}
