package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDetectSuspiciousRequest(t *testing.T) {
	d := NewDetector()

	tests := []struct {
		name       string
		method     string
		target     string
		userAgent  string
		suspicious bool
	}{
		{"plain session poll", http.MethodGet, "/api/session", "Mozilla/5.0", false},
		{"curl is a legitimate client", http.MethodGet, "/api/transactions?type=expense", "curl/8.5.0", false},
		{"filter query with merchant search", http.MethodGet, "/api/transactions?search=Shell+Gas", "Mozilla/5.0", false},
		{"path traversal", http.MethodGet, "/api/../etc/passwd", "Mozilla/5.0", true},
		{"dotfile probe", http.MethodGet, "/.env", "Mozilla/5.0", true},
		{"sql injection in query", http.MethodGet, "/api/transactions?search=%27%20union%20select", "Mozilla/5.0", true},
		{"scanner user agent", http.MethodGet, "/api/session", "sqlmap/1.7", true},
		{"trace method", "TRACE", "/api/session", "Mozilla/5.0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			req.Header.Set("User-Agent", tt.userAgent)
			if got := d.DetectSuspiciousRequest(req); got != tt.suspicious {
				t.Errorf("DetectSuspiciousRequest() = %v, want %v", got, tt.suspicious)
			}
		})
	}
}

func TestExtractClientIP(t *testing.T) {
	d := NewDetector()

	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		want       string
	}{
		{"direct connection", "203.0.113.7:51000", "", "203.0.113.7"},
		{"trusted proxy forwards client", "10.0.0.5:443", "203.0.113.7, 10.0.0.5", "203.0.113.7"},
		{"untrusted peer cannot spoof", "203.0.113.7:51000", "198.51.100.1", "203.0.113.7"},
		{"garbage forwarded value ignored", "127.0.0.1:8081", "not-an-ip", "127.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if got := d.ExtractClientIP(req); got != tt.want {
				t.Errorf("ExtractClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHeadersMiddleware(t *testing.T) {
	handler := NewHeadersMiddleware(DefaultHeadersConfig()).Middleware(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/session", nil))

	want := map[string]string{
		"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"Cache-Control":           "no-store",
		"Referrer-Policy":         "no-referrer",
	}
	for name, value := range want {
		if got := rr.Header().Get(name); got != value {
			t.Errorf("%s = %q, want %q", name, got, value)
		}
	}

	// No TLS on the test request, so no HSTS.
	if got := rr.Header().Get("Strict-Transport-Security"); got != "" {
		t.Errorf("HSTS on plain HTTP = %q, want unset", got)
	}
}
