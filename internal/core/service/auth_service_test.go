package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/core/domain"
	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/core/token"
)

type stubIdentityRepo struct {
	byEmail map[string]*domain.Identity
}

func newStubIdentityRepo() *stubIdentityRepo {
	return &stubIdentityRepo{byEmail: make(map[string]*domain.Identity)}
}

func cloneIdentity(i *domain.Identity) *domain.Identity {
	if i == nil {
		return nil
	}
	clone := *i
	clone.Roles = append([]string(nil), i.Roles...)
	return &clone
}

func (r *stubIdentityRepo) Create(_ context.Context, identity *domain.Identity) (*domain.Identity, error) {
	if _, exists := r.byEmail[identity.Email]; exists {
		return nil, domain.ErrDuplicateIdentity
	}
	stored := cloneIdentity(identity)
	stored.ID = stored.Email // deterministic enough for tests
	r.byEmail[stored.Email] = stored
	return cloneIdentity(stored), nil
}

func (r *stubIdentityRepo) FindByEmail(_ context.Context, email string) (*domain.Identity, error) {
	if i, ok := r.byEmail[email]; ok {
		return cloneIdentity(i), nil
	}
	return nil, domain.ErrIdentityNotFound
}

func (r *stubIdentityRepo) FindByID(_ context.Context, id string) (*domain.Identity, error) {
	for _, i := range r.byEmail {
		if i.ID == id {
			return cloneIdentity(i), nil
		}
	}
	return nil, domain.ErrIdentityNotFound
}

func newTestService(t *testing.T) (*AuthService, *stubIdentityRepo) {
	t.Helper()
	iss, err := token.NewIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	repo := newStubIdentityRepo()
	return NewAuthService(repo, iss), repo
}

func TestRegister_Success(t *testing.T) {
	svc, _ := newTestService(t)

	identity, err := svc.Register(context.Background(), "alice@example.com", "correct horse battery", "Alice")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if identity.PasswordHash == "" || identity.PasswordHash == "correct horse battery" {
		t.Fatalf("password not hashed: %q", identity.PasswordHash)
	}
	if identity.Role != domain.RoleCustomer {
		t.Fatalf("role = %q, want customer", identity.Role)
	}
	if identity.Shares != 0 {
		t.Fatalf("new member shares = %v, want 0", identity.Shares)
	}
	if identity.Status != domain.StatusActive {
		t.Fatalf("status = %q, want active", identity.Status)
	}
}

func TestRegister_EmptyFields(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Register(context.Background(), "", "pw", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "a@b.c", "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Register(context.Background(), "bob@example.com", "pw-one", "Bob"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob@example.com", "pw-two", "Bobby"); !errors.Is(err, domain.ErrDuplicateIdentity) {
		t.Fatalf("expected ErrDuplicateIdentity, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	svc, repo := newTestService(t)

	if _, err := svc.Register(context.Background(), "carol@example.com", "s3cret-phrase", "Carol"); err != nil {
		t.Fatalf("register: %v", err)
	}
	repo.byEmail["carol@example.com"].Shares = 120
	repo.byEmail["carol@example.com"].Roles = []string{domain.RoleShareholder}

	identity, signed, err := svc.Login(context.Background(), "carol@example.com", "s3cret-phrase")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if signed == "" {
		t.Fatalf("expected a bearer token")
	}
	if identity.Shares != 120 {
		t.Fatalf("login must return the live balance, got %v", identity.Shares)
	}
}

func TestLogin_WrongPasswordAndUnknownEmailAreUniform(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Register(context.Background(), "dave@example.com", "goodpass-123", "Dave"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, errWrongPw := svc.Login(context.Background(), "dave@example.com", "badpass")
	_, _, errNoUser := svc.Login(context.Background(), "ghost@example.com", "whatever")

	if !errors.Is(errWrongPw, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPw)
	}
	if !errors.Is(errNoUser, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errNoUser)
	}
}

func TestRefresh_ReflectsLiveState(t *testing.T) {
	svc, repo := newTestService(t)

	created, err := svc.Register(context.Background(), "erin@example.com", "initial-pass", "Erin")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// Role and balance change after issuance; refresh must pick them up.
	repo.byEmail["erin@example.com"].Roles = []string{domain.RoleAngel}
	repo.byEmail["erin@example.com"].Shares = 300

	identity, signed, err := svc.Refresh(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if signed == "" {
		t.Fatalf("expected a token")
	}
	if identity.Shares != 300 || identity.Roles[0] != domain.RoleAngel {
		t.Fatalf("refresh did not re-fetch live state: %+v", identity)
	}
}

func TestRefresh_DeletedIdentity(t *testing.T) {
	svc, _ := newTestService(t)

	if _, _, err := svc.Refresh(context.Background(), "gone"); !errors.Is(err, domain.ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
}
