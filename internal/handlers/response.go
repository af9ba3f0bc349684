package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"vms-admin/internal/clients"
	"vms-admin/internal/documents"
	"vms-admin/internal/middleware"
	"vms-admin/internal/models"
	"vms-admin/internal/store"
)

// HealthResponse is the body of the health and readiness probes
type HealthResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

func success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, models.SuccessResponse{
		Success: true,
		Data:    data,
	})
}

func successMessage(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, models.SuccessResponse{
		Success: true,
		Data:    data,
		Message: &message,
	})
}

func abortWithError(c *gin.Context, status int, code, message, field string, modal *models.Modal) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    code,
			Message: message,
			Field:   field,
		},
		Modal:     modal,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: middleware.GetRequestID(c),
	})
}

func badRequest(c *gin.Context, message string) {
	abortWithError(c, http.StatusBadRequest, models.CodeInvalidRequest, message, "", nil)
}

// bindFailed answers a request body that failed to bind. Binding rule
// failures get the same blocking modal as store validation errors.
func bindFailed(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		respondError(c, err, "Invalid form")
		return
	}
	badRequest(c, err.Error())
}

// respondError maps a store or client error onto the view API.
// action is the alert text shown when the backend rejected a mutation.
func respondError(c *gin.Context, err error, action string) {
	_ = c.Error(err)

	var validationErr *models.ValidationError
	var fieldErrs validator.ValidationErrors
	var conflictErr *store.ConflictError
	var httpErr *clients.HTTPError

	if errors.As(err, &fieldErrs) {
		err = models.NewValidationError(fieldErrs)
	}

	switch {
	case errors.As(err, &validationErr):
		abortWithError(c, http.StatusUnprocessableEntity, models.CodeValidation, validationErr.Error(), validationErr.Field, &models.Modal{
			Title:    "Missing Information",
			Message:  "Please fill in all the required fields.",
			Blocking: true,
		})
	case errors.As(err, &conflictErr):
		abortWithError(c, http.StatusConflict, models.CodeProductExists, conflictErr.Message, "", &models.Modal{
			Title:    "Product Exists",
			Message:  conflictErr.Message,
			Blocking: true,
		})
	case errors.Is(err, store.ErrDismissed):
		abortWithError(c, http.StatusGone, models.CodeViewDismissed, "The view was closed before the request completed", "", nil)
	case errors.Is(err, store.ErrInvalidTransition):
		abortWithError(c, http.StatusConflict, models.CodeInvalidTransition, err.Error(), "", nil)
	case errors.Is(err, documents.ErrNotShippable):
		abortWithError(c, http.StatusConflict, models.CodeNotShippable, err.Error(), "", nil)
	case errors.Is(err, store.ErrProductNotFound),
		errors.Is(err, store.ErrSizeNotFound),
		errors.Is(err, store.ErrOrderNotFound):
		abortWithError(c, http.StatusNotFound, models.CodeNotFound, err.Error(), "", nil)
	case errors.Is(err, store.ErrUnexpectedResponse), errors.Is(err, clients.ErrUnexpectedShape):
		abortWithError(c, http.StatusBadGateway, models.CodeUnexpected, action, "", nil)
	case errors.As(err, &httpErr):
		message := action
		if httpErr.Detail != "" {
			message = action + ": " + httpErr.Detail
		}
		abortWithError(c, http.StatusBadGateway, models.CodeBackend, message, "", nil)
	case clients.IsTransport(err):
		abortWithError(c, http.StatusBadGateway, models.CodeBackend, action, "", nil)
	default:
		abortWithError(c, http.StatusInternalServerError, models.CodeInternal, action, "", nil)
	}
}
