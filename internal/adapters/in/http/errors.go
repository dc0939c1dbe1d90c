package http

import (
	"errors"
	"net/http"

	"atelier/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body returned for every failed request. Detail
// carries the underlying error text and is only populated outside production,
// so internal identifiers and SQL fragments never leak to end users.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// statusForError maps the domain error kinds onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func messageForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Invalid request"
	case http.StatusForbidden:
		return "Not permitted"
	case http.StatusNotFound:
		return "Not found"
	case http.StatusConflict:
		return "Conflict with existing data"
	default:
		return "Internal error"
	}
}

// writeError renders err as an ErrorResponse with the mapped status code.
func (s *Server) writeError(ctx echo.Context, err error) error {
	status := statusForError(err)

	body := ErrorResponse{
		Code:    status,
		Message: messageForStatus(status),
	}
	if !s.production {
		body.Detail = err.Error()
	}

	return ctx.JSON(status, body)
}
