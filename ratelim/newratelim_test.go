package ratelim

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
)

func TestAllowBurstThenDeny(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	if !rl.Allow("1.2.3.4") || !rl.Allow("1.2.3.4") {
		t.Fatal("burst should be allowed")
	}
	if rl.Allow("1.2.3.4") {
		t.Fatal("third request should be denied")
	}
	if !rl.Allow("5.6.7.8") {
		t.Fatal("other visitors have their own bucket")
	}
}

func TestSweepForgetsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("old")
	now = now.Add(IdleTTL + time.Second)
	rl.Allow("fresh")

	if removed := rl.Sweep(); removed != 1 {
		t.Fatalf("removed %d visitors, want 1", removed)
	}
	if _, ok := rl.visitors["fresh"]; !ok {
		t.Fatal("recent visitor should remain")
	}
}

func TestLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	h := rl.Limit(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/contact", nil)
	req.RemoteAddr = "10.0.0.1:5555"

	rr := httptest.NewRecorder()
	h(rr, req, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("first request: got %d", rr.Code)
	}

	req.RemoteAddr = "10.0.0.1:6666"
	rr = httptest.NewRecorder()
	h(rr, req, nil)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("second request from same IP: got %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Fatal("missing Retry-After")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.168.1.9:1234"
	if got := ClientIP(r); got != "192.168.1.9" {
		t.Fatalf("got %q", got)
	}
	r.RemoteAddr = "garbage"
	if got := ClientIP(r); got != "garbage" {
		t.Fatalf("got %q", got)
	}
}
