package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/axellelanca/catalog/internal/services"
)

type CreateAccountRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
}

type UpdateAccountRequest struct {
	IsActive  *bool   `json:"is_active"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

type ResetPasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

func ListAccountsHandler(accounts *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := accounts.ListAccounts(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, mapSlice(list, newAccountResponse))
	}
}

func RetrieveAccountHandler(accounts *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c)
		if err != nil {
			respondError(c, err)
			return
		}
		user, err := accounts.GetAccount(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, newAccountResponse(*user))
	}
}

// CreateAccountHandler creates an active administrator.
func CreateAccountHandler(accounts *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateAccountRequest
		if !bindJSON(c, &req) {
			return
		}
		user, err := accounts.CreateAccount(c.Request.Context(), services.CreateAccountInput{
			Email:     req.Email,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, newAccountResponse(*user))
	}
}

func UpdateAccountHandler(accounts *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var req UpdateAccountRequest
		if !bindJSON(c, &req) {
			return
		}
		user, err := accounts.UpdateAccount(c.Request.Context(), id, services.UpdateAccountInput{
			IsActive:  req.IsActive,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, newAccountResponse(*user))
	}
}

// DeleteAccountHandler refuses to let administrators delete themselves.
func DeleteAccountHandler(accounts *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := accounts.DeleteAccount(c.Request.Context(), currentUser(c), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ResetPasswordHandler lets an administrator change their own password.
func ResetPasswordHandler(accounts *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var req ResetPasswordRequest
		if !bindJSON(c, &req) {
			return
		}
		err = accounts.ResetPassword(c.Request.Context(), currentUser(c), id, req.CurrentPassword, req.NewPassword)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"detail": detailPasswordReset})
	}
}
