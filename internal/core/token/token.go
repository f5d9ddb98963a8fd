// Package token issues and verifies the signed bearer tokens used for
// stateless auth. Claims are frozen at issuance: role or balance changes made
// afterwards are not visible until the token expires and is reissued.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/core/domain"
)

// DefaultTTL is the fixed token lifetime.
const DefaultTTL = 24 * time.Hour

// ErrEmptySecret is returned by NewIssuer when no signing secret is
// configured. There is deliberately no fallback secret.
var ErrEmptySecret = errors.New("token: signing secret must not be empty")

// Claims is the token payload: identity snapshot plus registered claims.
type Claims struct {
	Email  string   `json:"email"`
	Roles  []string `json:"roles,omitempty"`
	Shares float64  `json:"shares"`
	jwt.RegisteredClaims
}

// Issuer creates and validates HS256-signed tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer builds an Issuer. An empty secret is a configuration error and
// must abort startup.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token carrying the identity's id, email, role set and share
// balance. The expiry is fixed relative to issuance time.
func (i *Issuer) Issue(identity *domain.Identity) (string, time.Time, error) {
	issuedAt := i.now()
	expiresAt := issuedAt.Add(i.ttl)

	claims := &Claims{
		Email:  identity.Email,
		Roles:  identity.RoleNames(),
		Shares: identity.Shares,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks the signature and expiry of raw and returns its claims.
// Signature mismatch, malformed structure and expiry all map to
// domain.ErrInvalidToken; callers cannot tell them apart.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

// Identity rebuilds the read-only identity snapshot embedded in the claims.
func (c *Claims) Identity() *domain.Identity {
	id := &domain.Identity{
		ID:     c.Subject,
		Email:  c.Email,
		Status: domain.StatusActive,
		Roles:  c.Roles,
		Shares: c.Shares,
	}
	if len(c.Roles) > 0 {
		id.Role = c.Roles[0]
	}
	return id
}
