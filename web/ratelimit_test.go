package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 2)

	if !rl.Allow("1.1.1.1") || !rl.Allow("1.1.1.1") {
		t.Fatal("Expected burst of 2 to be allowed")
	}
	if rl.Allow("1.1.1.1") {
		t.Error("Expected third request to be limited")
	}
	if !rl.Allow("2.2.2.2") {
		t.Error("Other clients must have their own bucket")
	}
}

func TestRateLimiter_ForgetsIdleClients(t *testing.T) {
	now := time.Now()
	rl := NewRateLimiter(rate.Limit(1), 1)
	rl.now = func() time.Time { return now }

	rl.Allow("1.1.1.1")
	if rl.size() != 1 {
		t.Fatalf("Expected 1 limiter, got %d", rl.size())
	}

	now = now.Add(limiterIdleExpiry + time.Second)
	rl.Allow("2.2.2.2")
	if rl.size() != 1 {
		t.Errorf("Expected idle limiter to be dropped, got %d", rl.size())
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.Use(RateLimitMiddleware(NewRateLimiter(rate.Every(time.Hour), 1)))
	g.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d", w.Code)
	}
}
