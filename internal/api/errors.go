package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	customerrors "github.com/axellelanca/catalog/internal/errors"
)

const (
	detailNotFound      = "Not found."
	detailInternal      = "A server error occurred."
	detailNotAuthed     = "Authentication credentials were not provided."
	detailForbidden     = "You do not have permission to perform this action."
	detailInvalidToken  = "Given token not valid for any token type"
	detailSelfDelete    = "You can't delete yourself."
	detailPasswordReset = "Password updated successfully."
	msgInvalidCreds     = "Invalid credentials"
)

func init() {
	// report validation failures under the JSON field names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// respondError writes the JSON error response matching err.
// Unexpected errors are logged and reported without internal detail.
func respondError(c *gin.Context, err error) {
	var verr *customerrors.ValidationError
	var inUse customerrors.BrandInUseError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, verr.Fields)
	case errors.As(err, &inUse):
		c.JSON(http.StatusBadRequest, gin.H{"detail": inUse.Error()})
	case errors.Is(err, customerrors.ErrSelfDelete):
		c.JSON(http.StatusBadRequest, gin.H{"detail": detailSelfDelete})
	case errors.Is(err, customerrors.ErrMissingEmail):
		c.JSON(http.StatusBadRequest, gin.H{"email": []string{"Users must have an email address"}})
	case errors.Is(err, customerrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": detailNotFound})
	case errors.Is(err, customerrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": detailInvalidToken, "code": "token_not_valid"})
	default:
		loggerFrom(c).Error("request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": detailInternal})
	}
}

// bindJSON decodes the request body into obj and validates its binding tags.
// On failure the 400 response is already written and false is returned.
// An empty body decodes as an empty object.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		v := &customerrors.ValidationError{}
		for _, fe := range verrs {
			v.Add(fe.Field(), validationMessage(fe))
		}
		c.JSON(http.StatusBadRequest, v.Fields)
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"detail": "JSON parse error - " + err.Error()})
	return false
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return "Ensure this field has no more than " + fe.Param() + " characters."
	default:
		return "Invalid value."
	}
}

func loggerFrom(c *gin.Context) *slog.Logger {
	if l, ok := c.Get(loggerKey); ok {
		if logger, ok := l.(*slog.Logger); ok {
			return logger
		}
	}
	return slog.Default()
}
