package db

import (
	"context"
	"errors"

	"biblio/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model := userToModel(*user)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrConflict
		}
		return err
	}
	*user = userFromModel(model)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model UserModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	user := userFromModel(model)
	return &user, nil
}

// FindPrincipalByID is the live lookup the authentication stage performs
// for every non-public request.
func (r *UserRepository) FindPrincipalByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.GetByID(ctx, id)
}

// FindByLogin matches the given value against username or email, in that
// order.
func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*domain.User, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model UserModel
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", login, login).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	user := userFromModel(model)
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []UserModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(models))
	for _, model := range models {
		out = append(out, userFromModel(model))
	}
	return out, nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model := userToModel(user)
	result := r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", user.ID).Updates(map[string]any{
		"username":   model.Username,
		"email":      model.Email,
		"password":   model.PasswordHash,
		"role":       model.Role,
		"profile_id": model.ProfileID,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Delete(&UserModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func userToModel(user domain.User) UserModel {
	return UserModel{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		ProfileID:    user.ProfileID,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func userFromModel(model UserModel) domain.User {
	return domain.User{
		ID:           model.ID,
		Username:     model.Username,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		Role:         domain.Role(model.Role),
		ProfileID:    model.ProfileID,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}
