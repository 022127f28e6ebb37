package usecase

import (
	"context"
	"errors"

	"biblio/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type UserFinder interface {
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type LoginResult struct {
	AccessToken string
	User        domain.User
}

// Login verifies a username-or-email plus password pair and issues a
// fresh credential for the live user record. It never reports whether
// the account or the password was the wrong half.
type Login struct {
	Users  UserFinder
	Signer domain.TokenSigner
}

func (uc *Login) Execute(ctx context.Context, login, password string) (*LoginResult, error) {
	if login == "" || password == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.Users.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrUnauthorized
	}

	// Re-read the record so the claim snapshot reflects the current role.
	current, err := uc.Users.GetByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	accessToken, err := uc.Signer.Sign(formatUserID(current.ID), current.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: accessToken, User: *current}, nil
}
