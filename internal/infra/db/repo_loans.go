package db

import (
	"context"
	"errors"

	"biblio/internal/domain"

	"gorm.io/gorm"
)

type LoanRepository struct {
	db *gorm.DB
}

func NewLoanRepository(db *gorm.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

func (r *LoanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model := loanToModel(*loan)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	*loan = loanFromModel(model)
	return nil
}

func (r *LoanRepository) GetByID(ctx context.Context, id int64) (*domain.Loan, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model LoanModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	loan := loanFromModel(model)
	return &loan, nil
}

func (r *LoanRepository) List(ctx context.Context) ([]domain.Loan, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []LoanModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Loan, 0, len(models))
	for _, model := range models {
		out = append(out, loanFromModel(model))
	}
	return out, nil
}

func (r *LoanRepository) Update(ctx context.Context, loan domain.Loan) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Model(&LoanModel{}).Where("id = ?", loan.ID).Updates(map[string]any{
		"loan_return":     loan.DueDate,
		"real_day_return": loan.ReturnedAt,
		"is_returned":     loan.Returned,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LoanRepository) Delete(ctx context.Context, id int64) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Delete(&LoanModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func loanToModel(loan domain.Loan) LoanModel {
	return LoanModel{
		ID:         loan.ID,
		LoanDate:   loan.LoanDate,
		DueDate:    loan.DueDate,
		ReturnedAt: loan.ReturnedAt,
		Returned:   loan.Returned,
		UserID:     loan.UserID,
		CopyID:     loan.CopyID,
	}
}

func loanFromModel(model LoanModel) domain.Loan {
	return domain.Loan{
		ID:         model.ID,
		LoanDate:   model.LoanDate,
		DueDate:    model.DueDate,
		ReturnedAt: model.ReturnedAt,
		Returned:   model.Returned,
		UserID:     model.UserID,
		CopyID:     model.CopyID,
	}
}
