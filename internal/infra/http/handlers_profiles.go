package http

import (
	"net/http"
	"time"

	"biblio/internal/domain"

	"github.com/gin-gonic/gin"
)

type profileRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Age       int    `json:"age"`
	Tel       string `json:"tel"`
	Address   string `json:"address"`
}

type updateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Age       *int    `json:"age"`
	Tel       *string `json:"tel"`
	Address   *string `json:"address"`
}

type profileResponse struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Age       int       `json:"age"`
	Tel       string    `json:"tel"`
	Address   string    `json:"address"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toProfileResponse(p domain.Profile) profileResponse {
	return profileResponse{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Age:       p.Age,
		Tel:       p.Tel,
		Address:   p.Address,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt,
	}
}

// profileOwner checks that the caller manages their own profile.
// Administrators may manage anyone's.
func profileOwner(c *gin.Context, userID int64) bool {
	identity, ok := getIdentity(c)
	if !ok {
		writeErrorCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return false
	}
	if identity.Role != domain.RoleAdmin && identity.UserID != userID {
		writeErrorCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return false
	}
	return true
}

func (s *Server) handleCreateProfile(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}
	if !profileOwner(c, userID) {
		return
	}
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "invalid profile payload")
		return
	}
	profile := domain.Profile{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Age:       req.Age,
		Tel:       req.Tel,
		Address:   req.Address,
		UserID:    userID,
	}
	if err := s.profiles.Create(c.Request.Context(), &profile); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProfileResponse(profile))
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}
	if !profileOwner(c, userID) {
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "invalid profile payload")
		return
	}
	profile, err := s.profiles.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = *req.LastName
	}
	if req.Age != nil {
		profile.Age = *req.Age
	}
	if req.Tel != nil {
		profile.Tel = *req.Tel
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}
	if err := s.profiles.Update(c.Request.Context(), *profile); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(*profile))
}
