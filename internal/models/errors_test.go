package models

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestAppError_HTTPStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"not found", NewNotFoundError("Post", 1), fiber.StatusNotFound},
		{"validation", NewValidationError("Content is required"), fiber.StatusBadRequest},
		{"forbidden", NewForbiddenError("You can only edit your own content"), fiber.StatusForbidden},
		{"conflict", NewConflictError("post 1 is already liked"), fiber.StatusConflict},
		{"unauthenticated", NewUnauthenticatedError("Invalid or expired token"), fiber.StatusUnauthorized},
		{"internal", NewInternalError(errors.New("boom")), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	t.Parallel()

	inner := errors.New("connection reset")
	appErr := NewInternalError(inner)
	assert.ErrorIs(t, appErr, inner)
	assert.Contains(t, appErr.Error(), "connection reset")
}

func TestNewNotFoundError_Message(t *testing.T) {
	t.Parallel()

	err := NewNotFoundError("Comment", 42)
	assert.Equal(t, "Comment with ID 42 not found", err.Message)
	assert.Equal(t, CodeNotFound, err.Code)
}
