package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. The
// optional fields carry gate-denial diagnostics.
type errorResponse struct {
	Error          string   `json:"error"`
	RequiredRoles  []string `json:"required_roles,omitempty"`
	CurrentRoles   []string `json:"current_roles,omitempty"`
	RequiredShares *float64 `json:"required_shares,omitempty"`
	CurrentShares  *float64 `json:"current_shares,omitempty"`
	RetryAfter     int      `json:"retry_after,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Renders gate denials with the required vs. current role/balance data.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if body.RetryAfter > 0 {
			c.Response().Header().Set(echo.HeaderRetryAfter, strconv.Itoa(body.RetryAfter))
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var fe *domain.ForbiddenError
	if errors.As(err, &fe) {
		return http.StatusForbidden, errorResponse{
			Error:         "forbidden",
			RequiredRoles: fe.Required,
			CurrentRoles:  fe.Current,
		}
	}

	var se *domain.InsufficientSharesError
	if errors.As(err, &se) {
		required, current := se.Required, se.Current
		return http.StatusForbidden, errorResponse{
			Error:          "insufficient share balance",
			RequiredShares: &required,
			CurrentShares:  &current,
		}
	}

	var rle *domain.RateLimitedError
	if errors.As(err, &rle) {
		seconds := int(rle.RetryAfter.Seconds())
		if seconds < 1 {
			seconds = 1
		}
		return http.StatusTooManyRequests, errorResponse{
			Error:      "too many requests",
			RetryAfter: seconds,
		}
	}

	// Known domain errors map to deterministic status codes. The three
	// unauthenticated flavours share 401 on the wire; logs and metrics keep
	// them apart.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, errorResponse{Error: "invalid token"}
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, errorResponse{Error: "unauthenticated"}
	case errors.Is(err, domain.ErrDuplicateIdentity):
		return http.StatusBadRequest, errorResponse{Error: "email already registered"}
	case errors.Is(err, domain.ErrIdentityNotFound):
		return http.StatusNotFound, errorResponse{Error: "identity not found"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
