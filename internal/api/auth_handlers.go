package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	customerrors "github.com/axellelanca/catalog/internal/errors"
	"github.com/axellelanca/catalog/internal/services"
)

type ObtainTokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// ObtainTokenHandler exchanges an email/password pair for a token pair.
func ObtainTokenHandler(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ObtainTokenRequest
		if !bindJSON(c, &req) {
			return
		}

		user, pair, err := authService.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, customerrors.ErrInvalidCredentials) {
				respondError(c, customerrors.NewNonFieldError(msgInvalidCreds))
				return
			}
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"access":  pair.Access,
			"refresh": pair.Refresh,
			"user_id": user.ID,
			"email":   user.Email,
		})
	}
}

// RefreshTokenHandler issues a new access token from a refresh token.
func RefreshTokenHandler(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshTokenRequest
		if !bindJSON(c, &req) {
			return
		}

		access, err := authService.Refresh(c.Request.Context(), req.Refresh)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"access": access})
	}
}
