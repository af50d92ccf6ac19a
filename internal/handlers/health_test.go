package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type pingerFunc func(context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if body := w.Body.String(); body != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", body)
	}
}

func TestReady(t *testing.T) {
	tests := []struct {
		name    string
		pingErr error
		want    int
	}{
		{name: "store reachable", want: http.StatusOK},
		{name: "store down", pingErr: errors.New("connection refused"), want: http.StatusServiceUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := Ready(pingerFunc(func(context.Context) error { return tc.pingErr }))

			w := httptest.NewRecorder()
			h(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if w.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, w.Code)
			}
		})
	}
}
