package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler/gen"
)

func errorBody(code, message string) gen.ErrorResponse {
	return gen.ErrorResponse{Error: gen.ErrorDetail{Code: code, Message: message}}
}

// notFoundBody returns an ErrorResponse for a missing resource.
// The caller supplies the human-readable message (e.g. "trip not found")
// because the handler is the layer that knows what was being looked up.
func notFoundBody(message string) gen.ErrorResponse {
	return errorBody("not_found", message)
}

// validationBody returns an ErrorResponse for a domain validation failure.
// The message is extracted from the wrapped domain.ErrValidation error.
func validationBody(err error) gen.ErrorResponse {
	return errorBody("validation_error", unwrapMessage(err))
}

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (e.g. missing or malformed body).
func requestBody(message string) gen.ErrorResponse {
	return errorBody("validation_error", message)
}

// unwrapMessage extracts the human-readable part from a wrapped validation error.
// e.g. "service.TripService.Create: validation error: destination is required" → "destination is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 && len(msg) > i+len(marker) {
		return msg[i+len(marker):]
	}
	return msg
}

// writeJSON encodes v as the response body with the given status.
// Used only for errors raised outside the strict handlers.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestError renders a body the generated strict handler could not decode.
// A body cut off by middleware.NewMaxBodySizeHandler yields 413; anything
// else yields 400.
func (s *Server) requestError(w http.ResponseWriter, _ *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody("payload_too_large", "request body too large"))
		return
	}
	writeJSON(w, http.StatusBadRequest, requestBody(decodeMessage(err)))
}

// decodeMessage turns a JSON decoding failure into a client-facing message.
func decodeMessage(err error) string {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return "request body is required"
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return "request body is not valid JSON"
	case errors.As(err, &typeErr):
		return fmt.Sprintf("field %q has the wrong type", typeErr.Field)
	case errors.Is(err, openapi_types.ErrValidationEmail):
		return "email is not a valid email address"
	}
	// Drop the generated "can't decode JSON body" prefix.
	if inner := errors.Unwrap(err); inner != nil {
		return inner.Error()
	}
	return err.Error()
}

// paramError renders a path parameter the generated router could not bind.
func (s *Server) paramError(w http.ResponseWriter, _ *http.Request, err error) {
	var formatErr *gen.InvalidParamFormatError
	if errors.As(err, &formatErr) && formatErr.ParamName == "id" {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid trip id: must be a UUID"))
		return
	}
	writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
}

// responseError logs an error returned by a handler and answers 500 without
// exposing it.
func (s *Server) responseError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.ErrorContext(r.Context(), "request failed",
		"method", r.Method, "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
}
