package db

import (
	"context"
	"errors"

	"biblio/internal/domain"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model := profileToModel(*profile)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	*profile = profileFromModel(model)
	return nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model ProfileModel
	err := r.db.WithContext(ctx).First(&model, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	profile := profileFromModel(model)
	return &profile, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile domain.Profile) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Model(&ProfileModel{}).Where("user_id = ?", profile.UserID).Updates(map[string]any{
		"first_name": profile.FirstName,
		"last_name":  profile.LastName,
		"age":        profile.Age,
		"tel":        profile.Tel,
		"address":    profile.Address,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func profileToModel(profile domain.Profile) ProfileModel {
	return ProfileModel{
		ID:        profile.ID,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Age:       profile.Age,
		Tel:       profile.Tel,
		Address:   profile.Address,
		UserID:    profile.UserID,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}

func profileFromModel(model ProfileModel) domain.Profile {
	return domain.Profile{
		ID:        model.ID,
		FirstName: model.FirstName,
		LastName:  model.LastName,
		Age:       model.Age,
		Tel:       model.Tel,
		Address:   model.Address,
		UserID:    model.UserID,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
