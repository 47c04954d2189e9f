package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ppiankov/casevalue/internal/model"
	"github.com/ppiankov/casevalue/internal/validate"
)

const (
	codeNotFound  = "not_found"
	codeInvalid   = "invalid_input"
	codeMalformed = "malformed"
	codeExpired   = "expired"
	codeInternal  = "internal"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Issues  []validate.Issue `json:"issues,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

// writeAppError maps engine error kinds onto HTTP statuses
func writeAppError(w http.ResponseWriter, err error) {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: errorDetail{
			Code:    codeInvalid,
			Message: "request failed validation",
			Issues:  verr.Issues,
		}})
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
	case errors.Is(err, model.ErrInvalidInput):
		writeError(w, http.StatusUnprocessableEntity, codeInvalid, err.Error())
	case errors.Is(err, model.ErrMalformed):
		writeError(w, http.StatusBadRequest, codeMalformed, err.Error())
	case errors.Is(err, model.ErrExpired):
		writeError(w, http.StatusGone, codeExpired, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
	}
}
