package http

import (
	"net/http"

	"biblio/internal/domain"

	"github.com/gin-gonic/gin"
)

type copyRequest struct {
	CopyNumber int `json:"copy_number" binding:"required"`
}

type updateCopyRequest struct {
	CopyNumber *int  `json:"copy_number"`
	Available  *bool `json:"available"`
}

type copyResponse struct {
	ID         int64 `json:"id"`
	CopyNumber int   `json:"copy_number"`
	Available  bool  `json:"available"`
	BookID     int64 `json:"book_id"`
}

func toCopyResponse(cp domain.Copy) copyResponse {
	return copyResponse{
		ID:         cp.ID,
		CopyNumber: cp.CopyNumber,
		Available:  cp.Available,
		BookID:     cp.BookID,
	}
}

func (s *Server) handleListCopies(c *gin.Context) {
	bookID, ok := pathID(c)
	if !ok {
		return
	}
	copies, err := s.copies.ListByBook(c.Request.Context(), bookID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	out := make([]copyResponse, 0, len(copies))
	for _, cp := range copies {
		out = append(out, toCopyResponse(cp))
	}
	c.JSON(http.StatusOK, gin.H{"copies": out})
}

func (s *Server) handleCreateCopy(c *gin.Context) {
	bookID, ok := pathID(c)
	if !ok {
		return
	}
	var req copyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "invalid copy payload")
		return
	}
	if _, err := s.books.GetByID(c.Request.Context(), bookID); err != nil {
		writeStoreError(c, err)
		return
	}
	cp := domain.Copy{
		CopyNumber: req.CopyNumber,
		Available:  true,
		BookID:     bookID,
	}
	if err := s.copies.Create(c.Request.Context(), &cp); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCopyResponse(cp))
}

func (s *Server) handleUpdateCopy(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateCopyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "invalid copy payload")
		return
	}
	cp, err := s.copies.GetByID(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if req.CopyNumber != nil {
		cp.CopyNumber = *req.CopyNumber
	}
	if req.Available != nil {
		cp.Available = *req.Available
	}
	if err := s.copies.Update(c.Request.Context(), *cp); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCopyResponse(*cp))
}

func (s *Server) handleDeleteCopy(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.copies.Delete(c.Request.Context(), id); err != nil {
		writeStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
