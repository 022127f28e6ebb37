package http

import (
	"errors"
	"net/http"

	"biblio/internal/domain"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	// Username also accepts the account email.
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	User        userResponse `json:"user"`
}

func (s *Server) handleLogin(c *gin.Context) {
	if !s.checkLoginRate(c) {
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_INPUT", "username and password are required")
		return
	}
	result, err := s.loginUC.Execute(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeErrorCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
			return
		}
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{
		AccessToken: result.AccessToken,
		User:        toUserResponse(result.User),
	})
}
