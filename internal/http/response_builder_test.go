package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"hisab/internal/core"
	"hisab/internal/services"
)

func TestJSONResponseBuilder_Basic(t *testing.T) {
	w := httptest.NewRecorder()

	NewJSONResponse().
		Status(http.StatusCreated).
		Header("X-Test", "1").
		JSON(map[string]int{"n": 1}).
		Write(w)

	if w.Code != http.StatusCreated {
		t.Errorf("Status code = %d, want %d", w.Code, http.StatusCreated)
	}
	if got := w.Header().Get("Content-Type"); got != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", got)
	}
	if w.Header().Get("X-Test") != "1" {
		t.Error("custom header not set")
	}
	if w.Body.String() != `{"n":1}` {
		t.Errorf("Body = %q", w.Body.String())
	}
}

func TestJSONResponseBuilder_Raw(t *testing.T) {
	w := httptest.NewRecorder()
	NewJSONResponse().Raw("text/csv", []byte("a,b")).Write(w)

	if w.Header().Get("Content-Type") != "text/csv" || w.Body.String() != "a,b" {
		t.Fatalf("unexpected raw response %q %q", w.Header().Get("Content-Type"), w.Body.String())
	}
}

func TestJSONResponseBuilder_EncodeFailure(t *testing.T) {
	w := httptest.NewRecorder()
	NewJSONResponse().JSON(map[string]any{"ch": make(chan int)}).Write(w)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Status code = %d, want 500", w.Code)
	}
}

func TestErrorFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", core.ErrEmptyDescription, http.StatusUnprocessableEntity},
		{"wrapped validation", fmt.Errorf("build: %w", core.ErrInvalidAmount), http.StatusUnprocessableEntity},
		{"currency", services.ErrUnsupportedCurrency, http.StatusUnprocessableEntity},
		{"transaction", services.ErrTransactionNotFound, http.StatusNotFound},
		{"category", services.ErrCategoryNotFound, http.StatusNotFound},
		{"tag", services.ErrTagNotFound, http.StatusNotFound},
		{"tag exists", services.ErrTagExists, http.StatusConflict},
		{"storage", errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ErrorFor(tt.err).Write(w)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}

	w := httptest.NewRecorder()
	ErrorFor(errors.New("disk full")).Write(w)
	if w.Body.String() != `{"error":"internal error"}` {
		t.Fatalf("internal errors must not leak details, got %q", w.Body.String())
	}
}
