package http

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rrgdev/url-shortener/internal/entity"
)

const statusError = "error"

type createURLRequest struct {
	FullURL string `json:"full_url" validate:"required"`
}

type urlResponse struct {
	ID         int64     `json:"id"`
	ShortURLID string    `json:"short_url_id"`
	ShortURL   string    `json:"short_url"`
	FullURL    string    `json:"full_url"`
	Visits     int64     `json:"visits"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (h *urlHandler) toURLResponse(rec *entity.URL) urlResponse {
	return urlResponse{
		ID:         rec.ID,
		ShortURLID: rec.ShortURLID,
		ShortURL:   h.baseURL + "/" + rec.ShortURLID,
		FullURL:    rec.FullURL,
		Visits:     rec.Visits,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}

type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  []validationError `json:"errors,omitempty"`
}

var (
	emptyRequestBodyResponse = errorResponse{
		Status:  statusError,
		Message: "empty request body",
	}

	invalidRequestBodyResponse = errorResponse{
		Status:  statusError,
		Message: "invalid request body",
	}

	missingFieldResponse = errorResponse{
		Status:  statusError,
		Message: entity.ErrMissingField.Error(),
	}

	invalidFormatResponse = errorResponse{
		Status:  statusError,
		Message: entity.ErrInvalidFormat.Error(),
	}

	urlNotFoundResponse = errorResponse{
		Status:  statusError,
		Message: entity.ErrURLNotFound.Error(),
	}

	idGenerationExhaustedResponse = errorResponse{
		Status:  statusError,
		Message: entity.ErrIDGenerationExhausted.Error(),
	}

	serverErrorResponse = errorResponse{
		Status:  statusError,
		Message: "server error occurred",
	}
)

func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "this field is required"
	default:
		return "invalid value"
	}
}

func getValidationErrors(err error) []validationError {
	var validationErrs []validationError

	errs, ok := err.(validator.ValidationErrors)
	if ok {
		for _, e := range errs {
			validationErrs = append(validationErrs, validationError{
				Field:   e.Field(),
				Message: messageForTag(e.Tag()),
			})
		}
	}

	return validationErrs
}

func validationErrorResponse(err error) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: "validation error",
		Errors:  getValidationErrors(err),
	}
}
