package ports

import (
	"context"

	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/core/domain"
)

// AuthService implements registration, credential login and token refresh.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*domain.Identity, error)
	// Login returns the identity and a freshly issued bearer token so callers
	// may switch to stateless auth after a session login.
	Login(ctx context.Context, email, password string) (*domain.Identity, string, error)
	// Refresh re-fetches the identity live and reissues a token carrying its
	// current roles and share balance.
	Refresh(ctx context.Context, identityID string) (*domain.Identity, string, error)
}
