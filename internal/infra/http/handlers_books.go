package http

import (
	"net/http"
	"time"

	"biblio/internal/domain"

	"github.com/gin-gonic/gin"
)

type bookRequest struct {
	Title           string `json:"title" binding:"required"`
	PublicationYear int    `json:"publication_year"`
	ISBN            string `json:"isbn" binding:"required"`
	Author          string `json:"author" binding:"required"`
	Category        string `json:"category"`
	ImageURL        string `json:"image_url"`
}

type updateBookRequest struct {
	Title           *string `json:"title"`
	PublicationYear *int    `json:"publication_year"`
	ISBN            *string `json:"isbn"`
	Author          *string `json:"author"`
	Category        *string `json:"category"`
	ImageURL        *string `json:"image_url"`
}

type bookResponse struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	PublicationYear int       `json:"publication_year"`
	ISBN            string    `json:"isbn"`
	Author          string    `json:"author"`
	Category        string    `json:"category"`
	ImageURL        string    `json:"image_url"`
	CreatedAt       time.Time `json:"created_at"`
}

func toBookResponse(b domain.Book) bookResponse {
	return bookResponse{
		ID:              b.ID,
		Title:           b.Title,
		PublicationYear: b.PublicationYear,
		ISBN:            b.ISBN,
		Author:          b.Author,
		Category:        b.Category,
		ImageURL:        b.ImageURL,
		CreatedAt:       b.CreatedAt,
	}
}

func (s *Server) handleListBooks(c *gin.Context) {
	books, err := s.books.List(c.Request.Context())
	if err != nil {
		writeStoreError(c, err)
		return
	}
	out := make([]bookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, toBookResponse(b))
	}
	c.JSON(http.StatusOK, gin.H{"books": out})
}

func (s *Server) handleGetBook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	book, err := s.books.GetByID(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookResponse(*book))
}

func (s *Server) handleCreateBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "invalid book payload")
		return
	}
	book := domain.Book{
		Title:           req.Title,
		PublicationYear: req.PublicationYear,
		ISBN:            req.ISBN,
		Author:          req.Author,
		Category:        req.Category,
		ImageURL:        req.ImageURL,
	}
	if err := s.books.Create(c.Request.Context(), &book); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookResponse(book))
}

func (s *Server) handleUpdateBook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "invalid book payload")
		return
	}
	book, err := s.books.GetByID(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.PublicationYear != nil {
		book.PublicationYear = *req.PublicationYear
	}
	if req.ISBN != nil {
		book.ISBN = *req.ISBN
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Category != nil {
		book.Category = *req.Category
	}
	if req.ImageURL != nil {
		book.ImageURL = *req.ImageURL
	}
	if err := s.books.Update(c.Request.Context(), *book); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookResponse(*book))
}

func (s *Server) handleDeleteBook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.books.Delete(c.Request.Context(), id); err != nil {
		writeStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
