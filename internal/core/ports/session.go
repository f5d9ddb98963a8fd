package ports

import "context"

// SessionStore is the narrow view of the framework-managed session the core
// needs: set the current identity id, read it back, invalidate.
type SessionStore interface {
	SetIdentity(ctx context.Context, identityID string) error
	// IdentityID returns the identity id bound to the current session, or ""
	// when the request carries no active session.
	IdentityID(ctx context.Context) string
	Invalidate(ctx context.Context) error
}
