package db

import (
	"context"
	"errors"

	"biblio/internal/domain"

	"gorm.io/gorm"
)

type CopyRepository struct {
	db *gorm.DB
}

func NewCopyRepository(db *gorm.DB) *CopyRepository {
	return &CopyRepository{db: db}
}

func (r *CopyRepository) Create(ctx context.Context, copy *domain.Copy) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model := copyToModel(*copy)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	*copy = copyFromModel(model)
	return nil
}

func (r *CopyRepository) GetByID(ctx context.Context, id int64) (*domain.Copy, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model CopyModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	c := copyFromModel(model)
	return &c, nil
}

func (r *CopyRepository) ListByBook(ctx context.Context, bookID int64) ([]domain.Copy, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []CopyModel
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("copy_number ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Copy, 0, len(models))
	for _, model := range models {
		out = append(out, copyFromModel(model))
	}
	return out, nil
}

func (r *CopyRepository) Update(ctx context.Context, copy domain.Copy) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Model(&CopyModel{}).Where("id = ?", copy.ID).Updates(map[string]any{
		"available":   copy.Available,
		"copy_number": copy.CopyNumber,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Claim atomically flips an available copy to unavailable. The guarded
// update means two concurrent claims can never both succeed; the loser
// sees ErrConflict.
func (r *CopyRepository) Claim(ctx context.Context, id int64) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Model(&CopyModel{}).
		Where("id = ? AND available = ?", id, true).
		Update("available", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *CopyRepository) SetAvailable(ctx context.Context, id int64, available bool) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Model(&CopyModel{}).Where("id = ?", id).Update("available", available)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CopyRepository) Delete(ctx context.Context, id int64) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Delete(&CopyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func copyToModel(copy domain.Copy) CopyModel {
	return CopyModel{
		ID:         copy.ID,
		Available:  copy.Available,
		CopyNumber: copy.CopyNumber,
		BookID:     copy.BookID,
		CreatedAt:  copy.CreatedAt,
		UpdatedAt:  copy.UpdatedAt,
	}
}

func copyFromModel(model CopyModel) domain.Copy {
	return domain.Copy{
		ID:         model.ID,
		Available:  model.Available,
		CopyNumber: model.CopyNumber,
		BookID:     model.BookID,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}
