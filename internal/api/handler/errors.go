package handler

import (
	"net/http"

	"github.com/mememaster/lobby/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

const (
	CodeInvalidRequest      = apierr.CodeInvalidRequest
	CodeRoomNotFound        = apierr.CodeRoomNotFound
	CodeRoomStarted         = apierr.CodeRoomStarted
	CodeInsufficientPlayers = apierr.CodeInsufficientPlayers
	CodeUnknownPersonality  = apierr.CodeUnknownPersonality
	CodeInternalError       = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}
