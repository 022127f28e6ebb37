package usecase

import (
	"context"
	"strconv"

	"biblio/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type UserWriter interface {
	Create(ctx context.Context, user *domain.User) error
}

type RegisterUserInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// RegisterUser hashes the password and persists a new account. The role
// defaults to BASIC when unset.
type RegisterUser struct {
	Users      UserWriter
	BcryptCost int
}

func (uc *RegisterUser) Execute(ctx context.Context, in RegisterUserInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	switch role {
	case "":
		role = domain.RoleBasic
	case domain.RoleBasic, domain.RoleAdmin:
	default:
		return nil, domain.ErrInvalidInput
	}
	cost := uc.BcryptCost
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), cost)
	if err != nil {
		return nil, err
	}
	user := domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := uc.Users.Create(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func formatUserID(id int64) string {
	return strconv.FormatInt(id, 10)
}
