package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/askbox/askbox/internal/ctxkeys"
	"github.com/askbox/askbox/internal/service"
)

// envelope is the response shape for every API call: data on success, an
// error kind otherwise.
type envelope struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

var kindStatus = map[string]int{
	service.KindPublicQuestionLoginRequired: http.StatusUnauthorized,
	service.KindAnonymousLoginRequired:      http.StatusUnauthorized,
	service.KindUnauthenticated:             http.StatusUnauthorized,
	service.KindPublicQuestionOnly:          http.StatusForbidden,
	service.KindNotAuthorized:               http.StatusForbidden,
	service.KindUserNotFound:                http.StatusNotFound,
	service.KindQuestionNotFound:            http.StatusNotFound,
	service.KindAnswerNotFound:              http.StatusNotFound,
	service.KindAlreadyAnswered:             http.StatusConflict,
	service.KindQuestionDeclined:            http.StatusConflict,
	service.KindUsernameTaken:               http.StatusConflict,
	service.KindReferrerAlreadySet:          http.StatusConflict,
	service.KindInvalidSecurityLevel:        http.StatusBadRequest,
	service.KindSelfReferral:                http.StatusBadRequest,
	service.KindValidationFailed:            http.StatusBadRequest,
	service.KindRateLimited:                 http.StatusTooManyRequests,
	service.KindInternalError:               http.StatusInternalServerError,
}

// StatusForKind returns the HTTP status used for an error kind.
func StatusForKind(kind string) int {
	status, ok := kindStatus[kind]
	if !ok {
		return http.StatusInternalServerError
	}
	return status
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// WriteErrorKind writes a failure envelope for a known kind.
func WriteErrorKind(w http.ResponseWriter, kind string) {
	writeFailure(w, envelope{Error: kind})
}

// WriteError maps err onto its kind. Internal errors are logged here since
// the client only ever sees "InternalError".
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	kind := service.ErrorKind(err)
	if kind == service.KindInternalError {
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", ctxkeys.RequestID(r.Context()),
		)
	}
	writeFailure(w, envelope{Error: kind})
}

func writeValidationError(w http.ResponseWriter, err error) {
	writeFailure(w, envelope{
		Error:  service.KindValidationFailed,
		Fields: FormatValidationError(err),
	})
}

func writeFailure(w http.ResponseWriter, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusForKind(body.Error))
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

var errInvalidBody = errors.New("invalid request body")

// maxBodyBytes bounds request bodies; the largest legitimate body is a
// profile update with a full set of social links.
const maxBodyBytes = 64 << 10

// decodeAndValidate reads a JSON body into dst and validates its struct
// tags. On failure the response has already been written.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	err := decoder.Decode(dst)
	if err != nil {
		slog.Debug("failed to decode request body", "error", err, "path", r.URL.Path)
		writeValidationError(w, errInvalidBody)
		return false
	}

	err = GetValidator().ValidateStruct(dst)
	if err != nil {
		writeValidationError(w, err)
		return false
	}
	return true
}
