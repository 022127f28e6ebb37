package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"biblio/internal/domain"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeErrorCode(c *gin.Context, status int, code, message string) {
	c.JSON(status, errorResponse{Code: code, Message: message})
}

// Store interfaces consumed by the handlers. The gorm repositories
// satisfy them; tests plug in fakes.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user domain.User) error
	Delete(ctx context.Context, id int64) error
}

type ProfileStore interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	Update(ctx context.Context, profile domain.Profile) error
}

type BookStore interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id int64) (*domain.Book, error)
	List(ctx context.Context) ([]domain.Book, error)
	Update(ctx context.Context, book domain.Book) error
	Delete(ctx context.Context, id int64) error
}

type CopyStore interface {
	Create(ctx context.Context, copy *domain.Copy) error
	GetByID(ctx context.Context, id int64) (*domain.Copy, error)
	ListByBook(ctx context.Context, bookID int64) ([]domain.Copy, error)
	Update(ctx context.Context, copy domain.Copy) error
	Delete(ctx context.Context, id int64) error
}

type LoanStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Loan, error)
	List(ctx context.Context) ([]domain.Loan, error)
	Delete(ctx context.Context, id int64) error
}

func writeStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeErrorCode(c, http.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, domain.ErrConflict):
		writeErrorCode(c, http.StatusConflict, "CONFLICT", "resource already exists")
	case errors.Is(err, domain.ErrInvalidInput):
		writeErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "invalid request")
	default:
		log.Printf("http: store error: %v", err)
		writeErrorCode(c, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "invalid id")
		return 0, false
	}
	return id, true
}

func (s *Server) handleNoRoute(c *gin.Context) {
	writeErrorCode(c, http.StatusNotFound, "NOT_FOUND", "no such route")
}
