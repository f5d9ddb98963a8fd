package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/core/credentials"
	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/core/domain"
	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/core/ports"
	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/core/token"
)

// AuthService implements registration, credential login and token refresh on
// top of the identity repository and the token issuer.
type AuthService struct {
	repo   ports.IdentityRepository
	issuer *token.Issuer
}

func NewAuthService(repo ports.IdentityRepository, issuer *token.Issuer) *AuthService {
	return &AuthService{repo: repo, issuer: issuer}
}

// Register creates a new member with the customer role and a zero share
// balance. A taken email yields domain.ErrDuplicateIdentity.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*domain.Identity, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := credentials.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	identity := &domain.Identity{
		Email:        email,
		Name:         name,
		Status:       domain.StatusActive,
		Role:         domain.RoleCustomer,
		Roles:        []string{domain.RoleCustomer},
		Shares:       0,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, identity)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Login verifies the credentials and returns the identity with a fresh
// bearer token. An unknown email and a wrong password are both reported as
// domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Identity, string, error) {
	if email == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	identity, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !credentials.Verify(password, identity.PasswordHash) {
		return nil, "", domain.ErrInvalidCredentials
	}

	signed, _, err := s.issuer.Issue(identity)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return identity, signed, nil
}

// Refresh re-fetches the identity live and reissues a token carrying its
// current roles and share balance. A deleted identity surfaces as
// domain.ErrIdentityNotFound; callers map it to an auth failure.
func (s *AuthService) Refresh(ctx context.Context, identityID string) (*domain.Identity, string, error) {
	identity, err := s.repo.FindByID(ctx, identityID)
	if err != nil {
		return nil, "", err
	}

	signed, _, err := s.issuer.Issue(identity)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return identity, signed, nil
}
