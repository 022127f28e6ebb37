package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"biblio/internal/domain"
)

type LoanWriter interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id int64) (*domain.Loan, error)
	Update(ctx context.Context, loan domain.Loan) error
}

type CopyAvailability interface {
	GetByID(ctx context.Context, id int64) (*domain.Copy, error)
	// Claim flips an available copy to unavailable in one conditional
	// write and reports ErrConflict when the copy was already taken.
	Claim(ctx context.Context, id int64) error
	SetAvailable(ctx context.Context, id int64, available bool) error
}

var (
	ErrCopyUnavailable  = errors.New("copy unavailable")
	ErrAlreadyReturned  = errors.New("loan already returned")
	ErrDueDateInThePast = errors.New("due date in the past")
)

// LoanService implements the checkout/return lifecycle: checking out a
// copy marks it unavailable for the duration of the loan, returning it
// stamps the real return day and frees the copy.
type LoanService struct {
	Loans  LoanWriter
	Copies CopyAvailability
	Now    func() time.Time
}

func (s *LoanService) clock() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *LoanService) Checkout(ctx context.Context, userID, copyID int64, due time.Time) (*domain.Loan, error) {
	now := s.clock()
	if due.Before(now) {
		return nil, ErrDueDateInThePast
	}
	if _, err := s.Copies.GetByID(ctx, copyID); err != nil {
		return nil, err
	}
	// Claim the copy before recording the loan so a race between two
	// checkouts resolves at the conditional write, not at the read above.
	if err := s.Copies.Claim(ctx, copyID); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrCopyUnavailable
		}
		return nil, err
	}
	loan := domain.Loan{
		LoanDate: now,
		DueDate:  due,
		UserID:   userID,
		CopyID:   copyID,
	}
	if err := s.Loans.Create(ctx, &loan); err != nil {
		// Free the claimed copy again; without a loan record it must not
		// stay checked out.
		if relErr := s.Copies.SetAvailable(ctx, copyID, true); relErr != nil {
			return nil, fmt.Errorf("create loan: %w (release copy: %v)", err, relErr)
		}
		return nil, err
	}
	return &loan, nil
}

func (s *LoanService) Return(ctx context.Context, loanID int64) (*domain.Loan, error) {
	loan, err := s.Loans.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Returned {
		return nil, ErrAlreadyReturned
	}
	now := s.clock()
	loan.Returned = true
	loan.ReturnedAt = &now
	if err := s.Loans.Update(ctx, *loan); err != nil {
		return nil, err
	}
	if err := s.Copies.SetAvailable(ctx, loan.CopyID, true); err != nil {
		return nil, err
	}
	return loan, nil
}
