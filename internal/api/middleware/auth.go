package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/api/metrics"
	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/core/domain"
	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/core/ports"
	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/core/token"
)

// Context keys set by Authenticate.
const (
	IdentityKey   = "identity"
	AuthMethodKey = "auth_method"
)

// IdentityFromContext extracts the identity attached by Authenticate. Gates
// and handlers calling this without a preceding successful resolution get
// domain.ErrUnauthenticated, never a nil dereference.
func IdentityFromContext(c echo.Context) (*domain.Identity, error) {
	identity, _ := c.Get(IdentityKey).(*domain.Identity)
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}
	return identity, nil
}

// Authenticate resolves the request to an identity, trying the server-side
// session first and the bearer token second.
//
// Session resolution re-fetches the identity live from storage, so roles and
// share balance are current; a session pointing at a deleted identity falls
// through as unauthenticated. Bearer resolution uses the claims frozen at
// issuance and performs no storage lookup — staleness until expiry is an
// accepted trade-off.
func Authenticate(sessions ports.SessionStore, repo ports.IdentityRepository, issuer *token.Issuer, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			if id := sessions.IdentityID(ctx); id != "" {
				identity, err := repo.FindByID(ctx, id)
				switch {
				case err == nil:
					metrics.AuthResolutionsTotal.WithLabelValues(metrics.ResolutionSession, metrics.ResultOK).Inc()
					c.Set(IdentityKey, identity)
					c.Set(AuthMethodKey, metrics.ResolutionSession)
					return next(c)
				case errors.Is(err, domain.ErrIdentityNotFound):
					// Identity deleted after the session was created.
					metrics.AuthResolutionsTotal.WithLabelValues(metrics.ResolutionSession, metrics.ResultIdentityDeleted).Inc()
					log.Debug().Str("identity_id", id).Msg("session references deleted identity")
				default:
					return err
				}
			}

			if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
				scheme, raw, ok := strings.Cut(header, " ")
				if !ok || !strings.EqualFold(scheme, "bearer") || raw == "" {
					metrics.AuthResolutionsTotal.WithLabelValues(metrics.ResolutionToken, metrics.ResultInvalidToken).Inc()
					return domain.ErrInvalidToken
				}

				claims, err := issuer.Verify(raw)
				if err != nil {
					metrics.AuthResolutionsTotal.WithLabelValues(metrics.ResolutionToken, metrics.ResultInvalidToken).Inc()
					log.Debug().Str("path", c.Path()).Msg("bearer token rejected")
					return domain.ErrInvalidToken
				}

				metrics.AuthResolutionsTotal.WithLabelValues(metrics.ResolutionToken, metrics.ResultOK).Inc()
				c.Set(IdentityKey, claims.Identity())
				c.Set(AuthMethodKey, metrics.ResolutionToken)
				return next(c)
			}

			metrics.AuthResolutionsTotal.WithLabelValues(metrics.ResolutionNoCredentials, metrics.ResultNoCredentials).Inc()
			return domain.ErrUnauthenticated
		}
	}
}
