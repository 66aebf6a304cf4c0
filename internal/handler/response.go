package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "holocron/internal/errors"
	"holocron/internal/logger"
)

// respondError writes err as {"msg","error"} with the status of its kind.
// Errors that are not AppErrors are treated as internal.
func respondError(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		appErr = apperrors.NewInternalError("Server error", err)
	}

	detail := string(appErr.Type)
	switch {
	case appErr.Type == apperrors.ErrorTypeInternal:
		logger.WithComponent("http").Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		if gin.IsDebugging() && appErr.Err != nil {
			detail = appErr.Err.Error()
		}
	case appErr.Details != "":
		detail = appErr.Details
	}
	c.JSON(appErr.Code, gin.H{"msg": appErr.Message, "error": detail})
}

// bindError turns a ShouldBindJSON failure into a validation error.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return apperrors.NewValidationError("Invalid request body", strings.Join(msgs, "; "))
	}
	return apperrors.NewValidationError("Invalid request body", err.Error())
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	}
	return fmt.Sprintf("%s failed %s", field, fe.Tag())
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, strconv.IntSize)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError("invalid "+name, raw)
	}
	return uint(id), nil
}

func notFoundList(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"msg": "not found"})
}
