package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func newLimitedEngine(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/auth/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return engine
}

func hit(engine *gin.Engine) int {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	engine.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter_InMemory(t *testing.T) {
	rl := NewRateLimiter(nil, 2, time.Minute)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	engine := newLimitedEngine(rl)

	for i := 0; i < 2; i++ {
		if code := hit(engine); code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d", i+1, code)
		}
	}
	if code := hit(engine); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}

	now = now.Add(2 * time.Minute)
	if code := hit(engine); code != http.StatusOK {
		t.Errorf("expected window reset, got %d", code)
	}
}

func TestRateLimiter_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	rl := NewRateLimiter(client, 1, time.Minute)
	engine := newLimitedEngine(rl)

	if code := hit(engine); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if code := hit(engine); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}

	mr.FastForward(2 * time.Minute)
	if code := hit(engine); code != http.StatusOK {
		t.Errorf("expected counter to expire, got %d", code)
	}
}

func TestRateLimiter_RedisDownFallsBack(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	rl := NewRateLimiter(client, 1, time.Minute)
	engine := newLimitedEngine(rl)

	if code := hit(engine); code != http.StatusOK {
		t.Fatalf("expected fallback to allow first attempt, got %d", code)
	}
	if code := hit(engine); code != http.StatusTooManyRequests {
		t.Errorf("expected fallback to enforce limit, got %d", code)
	}
}
