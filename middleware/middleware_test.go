package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRecoveryMiddlewarePanicRespondsJSON(t *testing.T) {
	handler := RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/customers/1", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("handler returned wrong status code: got %v want %v",
			rr.Code, http.StatusInternalServerError)
	}

	if got, want := rr.Header().Get("Content-Type"), "application/json"; got != want {
		t.Errorf("handler returned wrong content type: got %v want %v", got, want)
	}

	// Тело паники имеет ту же форму, что и остальные ошибочные ответы
	var body struct {
		Title     string            `json:"title"`
		Status    int               `json:"status"`
		Exception string            `json:"exception"`
		Details   map[string]string `json:"details"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}

	if got, want := body.Title, "INTERNAL SERVER ERROR! Contact admin"; got != want {
		t.Errorf("handler returned wrong title: got %q want %q", got, want)
	}
	if body.Status != http.StatusInternalServerError {
		t.Errorf("handler returned wrong status field: got %v want %v",
			body.Status, http.StatusInternalServerError)
	}
	if got, want := body.Details["cause"], "boom"; got != want {
		t.Errorf("handler returned wrong cause: got %q want %q", got, want)
	}
}

func TestRecoveryMiddlewarePassthrough(t *testing.T) {
	handler := RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodDelete, "/api/customers/1", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("handler returned wrong status code: got %v want %v",
			rr.Code, http.StatusNoContent)
	}
}
