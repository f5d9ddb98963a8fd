package ports

import (
	"context"

	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/core/domain"
)

// IdentityRepository is the persistence boundary for platform members. The
// password hash never travels past the credential check in the auth service.
//
// Role lookup is folded into FindByID/FindByEmail: member documents embed
// their role collection, and the repository normalises legacy shapes (bare
// role strings vs. role objects) into domain.Identity.Roles on decode.
type IdentityRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	FindByID(ctx context.Context, id string) (*domain.Identity, error)
	Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
}
