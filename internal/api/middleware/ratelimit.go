package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/api/metrics"
	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/core/domain"
	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/core/ports"
)

// RateLimit bounds requests per client address on the routes it wraps.
// A limiter backend failure fails open: availability wins over strictness
// for a login limiter, and the denial is only ever a slowdown for attackers.
func RateLimit(limiter ports.RateLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()

			ok, retryAfter, err := limiter.Allow(c.Request().Context(), key)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, failing open")
				return next(c)
			}
			if !ok {
				metrics.RateLimitedTotal.Inc()
				return &domain.RateLimitedError{RetryAfter: retryAfter}
			}
			return next(c)
		}
	}
}
