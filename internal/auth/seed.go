package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// DemoAccount is the mocked local account the dashboard logs in with.
type DemoAccount struct {
	Username string
	Email    string
	Password string
}

// EnsureDemoUser creates the demo account, or refreshes its password hash
// when the configured password changed.
func EnsureDemoUser(ctx context.Context, repo *Repo, acct DemoAccount) (*User, error) {
	email := strings.TrimSpace(strings.ToLower(acct.Email))
	if email == "" || acct.Password == "" {
		return nil, fmt.Errorf("demo account: email and password required")
	}

	existing, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(acct.Password)) == nil {
			return existing, nil
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(acct.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash demo password: %w", err)
		}
		if err := repo.UpdatePassword(ctx, existing.ID, string(hash)); err != nil {
			return nil, err
		}
		return repo.GetByID(ctx, existing.ID)
	}

	username := acct.Username
	if username == "" {
		username, _, _ = strings.Cut(email, "@")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(acct.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}
	u := User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, u.ID)
}

// Authenticate checks an email/password pair against the stored hash.
func Authenticate(ctx context.Context, repo *Repo, email, password string) (*User, error) {
	u, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
