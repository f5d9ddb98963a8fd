// Package session wraps the scs session manager with the narrow identity
// binding the auth layer needs. Session data lives in Redis so instances can
// be restarted (and scaled) without logging members out.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/redis/go-redis/v9"
)

const keyIdentityID = "identity_id"

// Manager wraps scs.SessionManager with identity-centric helpers. It
// satisfies ports.SessionStore.
type Manager struct {
	*scs.SessionManager
}

// Config controls session lifetime and cookie hardening.
type Config struct {
	Lifetime      time.Duration
	SecureCookies bool
}

// NewManager builds a Redis-backed session manager.
func NewManager(client *redis.Client, cfg Config) *Manager {
	sm := scs.New()
	sm.Store = goredisstore.New(client)

	if cfg.Lifetime > 0 {
		sm.Lifetime = cfg.Lifetime
		sm.IdleTimeout = cfg.Lifetime / 2
	}

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm}
}

// SetIdentity binds the session to an identity after a successful login.
// The token is renewed first to prevent session fixation.
func (m *Manager) SetIdentity(ctx context.Context, identityID string) error {
	if err := m.RenewToken(ctx); err != nil {
		return err
	}
	m.Put(ctx, keyIdentityID, identityID)
	return nil
}

// IdentityID returns the identity bound to the current session, or "" when
// the request carries no active session.
func (m *Manager) IdentityID(ctx context.Context) string {
	return m.GetString(ctx, keyIdentityID)
}

// Invalidate destroys the session and its server-side data.
func (m *Manager) Invalidate(ctx context.Context) error {
	return m.Destroy(ctx)
}
