package response

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/events-api/internal/domain"
	appCtx "github.com/baechuer/events-api/internal/pkg/context"
)

type ErrorBody struct {
	Error ErrorPayload `json:"error"`
}

type ErrorPayload struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Meta      map[string]string `json:"meta,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Fail(w http.ResponseWriter, r *http.Request, status int, code, message string, meta map[string]string) {
	JSON(w, r, status, ErrorBody{
		Error: ErrorPayload{
			Code:      code,
			Message:   message,
			Meta:      meta,
			RequestID: appCtx.GetRequestID(r.Context()),
		},
	})
}

// Err maps err to an HTTP error response. Errors that are not AppErrors
// become 500s and their details stay in the logs.
func Err(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		Fail(w, r, http.StatusInternalServerError, "internal_error", "unknown error", nil)
		return
	}

	var ae *domain.AppError
	if errors.As(err, &ae) {
		Fail(w, r, statusFromCode(ae.Code), string(ae.Code), ae.Message, ae.Meta)
		return
	}

	zlog.Error().
		Err(err).
		Str("request_id", appCtx.GetRequestID(r.Context())).
		Str("path", r.URL.Path).
		Msg("unhandled error")
	Fail(w, r, http.StatusInternalServerError, "internal_error", "internal error", nil)
}

func statusFromCode(code domain.ErrCode) int {
	switch code {
	case domain.CodeValidation, domain.CodeBadRequest:
		return http.StatusBadRequest
	case domain.CodeUnauthorized:
		return http.StatusUnauthorized
	case domain.CodeForbidden:
		return http.StatusForbidden
	case domain.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
