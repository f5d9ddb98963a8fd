package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/core/domain"
)

type stubLimiter struct {
	ok         bool
	retryAfter time.Duration
	err        error
	keys       []string
}

func (l *stubLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	l.keys = append(l.keys, key)
	return l.ok, l.retryAfter, l.err
}

func limiterContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "203.0.113.7:4711"
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestRateLimit_Allows(t *testing.T) {
	limiter := &stubLimiter{ok: true}
	c := limiterContext()

	called := false
	handler := RateLimit(limiter, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "203.0.113.7" {
		t.Fatalf("limiter keyed by %v, want client IP", limiter.keys)
	}
}

func TestRateLimit_Denies(t *testing.T) {
	limiter := &stubLimiter{ok: false, retryAfter: 42 * time.Second}
	c := limiterContext()

	err := RateLimit(limiter, zerolog.Nop())(func(echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)

	var rle *domain.RateLimitedError
	if !errors.As(err, &rle) {
		t.Fatalf("expected RateLimitedError, got %v", err)
	}
	if rle.RetryAfter != 42*time.Second {
		t.Fatalf("retry after = %s, want 42s", rle.RetryAfter)
	}
}

func TestRateLimit_FailsOpenOnBackendError(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("redis down")}
	c := limiterContext()

	called := false
	handler := RateLimit(limiter, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("limiter failure must fail open")
	}
}
