package trace

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMiddlewareAssignsRequestID(t *testing.T) {
	var seen string
	handler := NewMiddleware(nil).Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/session", nil))

	if !strings.HasPrefix(seen, "req_") {
		t.Errorf("request id = %q, want req_ prefix", seen)
	}
	if rr.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204 passed through", rr.Code)
	}
}

func TestRequestIDOutsideMiddleware(t *testing.T) {
	if got := RequestID(httptest.NewRequest(http.MethodGet, "/", nil).Context()); got != "" {
		t.Errorf("request id outside middleware = %q, want empty", got)
	}
}

func TestRequestIDsAreUnique(t *testing.T) {
	ids := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := newRequestID()
		if ids[id] {
			t.Fatalf("duplicate request id %q", id)
		}
		ids[id] = true
	}
}
