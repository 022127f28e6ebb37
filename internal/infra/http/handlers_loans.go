package http

import (
	"errors"
	"net/http"
	"time"

	"biblio/internal/domain"
	"biblio/internal/usecase"

	"github.com/gin-gonic/gin"
)

type createLoanRequest struct {
	CopyID  int64     `json:"copy_id" binding:"required"`
	DueDate time.Time `json:"due_date" binding:"required"`
}

type loanResponse struct {
	ID         int64      `json:"id"`
	LoanDate   time.Time  `json:"loan_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	Returned   bool       `json:"returned"`
	UserID     int64      `json:"user_id"`
	CopyID     int64      `json:"copy_id"`
}

func toLoanResponse(l domain.Loan) loanResponse {
	return loanResponse{
		ID:         l.ID,
		LoanDate:   l.LoanDate,
		DueDate:    l.DueDate,
		ReturnedAt: l.ReturnedAt,
		Returned:   l.Returned,
		UserID:     l.UserID,
		CopyID:     l.CopyID,
	}
}

func (s *Server) handleListLoans(c *gin.Context) {
	loans, err := s.loans.List(c.Request.Context())
	if err != nil {
		writeStoreError(c, err)
		return
	}
	out := make([]loanResponse, 0, len(loans))
	for _, l := range loans {
		out = append(out, toLoanResponse(l))
	}
	c.JSON(http.StatusOK, gin.H{"loans": out})
}

func (s *Server) handleGetLoan(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	loan, err := s.loans.GetByID(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLoanResponse(*loan))
}

func (s *Server) handleCreateLoan(c *gin.Context) {
	identity, ok := getIdentity(c)
	if !ok {
		writeErrorCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}
	var req createLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "invalid loan payload")
		return
	}
	loan, err := s.loanSvc.Checkout(c.Request.Context(), identity.UserID, req.CopyID, req.DueDate)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCopyUnavailable):
			writeErrorCode(c, http.StatusConflict, "COPY_UNAVAILABLE", "copy is checked out")
		case errors.Is(err, usecase.ErrDueDateInThePast):
			writeErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "due date is in the past")
		default:
			writeStoreError(c, err)
		}
		return
	}
	c.JSON(http.StatusCreated, toLoanResponse(*loan))
}

func (s *Server) handleReturnLoan(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	loan, err := s.loanSvc.Return(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrAlreadyReturned) {
			writeErrorCode(c, http.StatusConflict, "ALREADY_RETURNED", "loan already returned")
			return
		}
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLoanResponse(*loan))
}

func (s *Server) handleDeleteLoan(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.loans.Delete(c.Request.Context(), id); err != nil {
		writeStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
