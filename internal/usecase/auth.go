package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/tdnguyen/storefront/internal/domain/errors"
	"github.com/tdnguyen/storefront/internal/domain/model"
	"github.com/tdnguyen/storefront/internal/domain/repository"
	pkgAuth "github.com/tdnguyen/storefront/internal/pkg/auth"
)

// AuthUseCase handles account lifecycle and token management.
type AuthUseCase struct {
	users      repository.UserRepository
	hasher     pkgAuth.PasswordHasher
	tokens     pkgAuth.Strategy
	adminEmail string
}

// NewAuthUseCase constructs AuthUseCase. Accounts registering with
// adminEmail receive the admin role.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, adminEmail string) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy, adminEmail: strings.ToLower(strings.TrimSpace(adminEmail))}
}

// Register creates a new account and returns an auth token.
func (u *AuthUseCase) Register(ctx context.Context, email, username, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	if username = strings.TrimSpace(username); username == "" {
		username = localPart(email)
	}

	role := model.RoleCustomer
	if u.adminEmail != "" && email == u.adminEmail {
		role = model.RoleAdmin
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, email, username, hash, role)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(pkgAuth.Claims{UserID: usr.ID, Role: string(usr.Role)})
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials, mirrors the profile row and returns
// an auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	// Mirror identity details onto the profile row on every sign-in.
	username := usr.Username
	if username == "" {
		username = localPart(usr.Email)
	}
	if err := u.users.SyncProfile(ctx, usr.ID, username, true); err != nil {
		return nil, "", err
	}
	usr.Username = username
	usr.IsActive = true

	token, err := u.tokens.IssueToken(pkgAuth.Claims{UserID: usr.ID, Role: string(usr.Role)})
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts claims from the provided token.
func (u *AuthUseCase) ParseToken(token string) (pkgAuth.Claims, error) {
	if token == "" {
		return pkgAuth.Claims{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches an account by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

func localPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
