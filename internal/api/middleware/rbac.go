package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/api/metrics"
	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/core/domain"
)

// RequireRole allows the request through when the identity's effective role
// set intersects the allowed set. The effective set falls back to the single
// primary role when no role collection is attached. Denials name both the
// required and the current roles.
func RequireRole(allowed ...string) echo.MiddlewareFunc {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := IdentityFromContext(c)
			if err != nil {
				return err
			}
			if !identity.HasAnyRole(allowedSet) {
				metrics.GateDenialsTotal.WithLabelValues("role").Inc()
				return &domain.ForbiddenError{
					Required: allowed,
					Current:  identity.RoleNames(),
				}
			}
			return next(c)
		}
	}
}

// Composite gates over fixed role sets. Each wider set is a superset of the
// narrower one.

// RequireAdmin gates routes for administrators only.
func RequireAdmin() echo.MiddlewareFunc {
	return RequireRole(domain.RoleAdmin)
}

// RequireStaff gates routes for back-office roles.
func RequireStaff() echo.MiddlewareFunc {
	return RequireRole(domain.RoleAdmin, domain.RoleStaff, domain.RoleAccountant)
}

// RequireCustomer gates routes open to any signed-in member tier.
func RequireCustomer() echo.MiddlewareFunc {
	return RequireRole(domain.RoleAdmin, domain.RoleStaff, domain.RoleAccountant,
		domain.RoleCustomer, domain.RoleShareholder)
}

// RequireMinShares denies when the identity's share balance is below the
// threshold. The balance is whatever the resolver attached: live for session
// auth, issuance-time for bearer auth.
func RequireMinShares(threshold float64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := IdentityFromContext(c)
			if err != nil {
				return err
			}
			if identity.Shares < threshold {
				metrics.GateDenialsTotal.WithLabelValues("shares").Inc()
				return &domain.InsufficientSharesError{
					Required: threshold,
					Current:  identity.Shares,
				}
			}
			return next(c)
		}
	}
}
