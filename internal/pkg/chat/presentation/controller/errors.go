package controller

import (
	"errors"
	"net/http"

	"github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/application/usecase"
)

// statusFor maps use case sentinel errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
