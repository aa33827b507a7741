package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/isogrid/isogrid/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps structured error codes to HTTP status codes. Errors
// without a code are treated as internal.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusForCode(code), errorResponse{
		Error: errorBody{Code: string(code), Message: errors.UserMessage(err)},
	})
}

func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidAxis,
		errors.ErrCodeInvalidMapping, errors.ErrCodeInvalidTree,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeAxisNotFound,
		errors.ErrCodeFacetNotFound, errors.ErrCodeViewNotFound,
		errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeStoreUnavailable:
		return http.StatusServiceUnavailable
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeNetwork, errors.ErrCodeStoreRead, errors.ErrCodeStoreWrite:
		return http.StatusBadGateway
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeBadRequest(w http.ResponseWriter, format string, args ...any) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error: errorBody{
			Code:    string(errors.ErrCodeInvalidInput),
			Message: fmt.Sprintf(format, args...),
		},
	})
}

func writeNotFound(w http.ResponseWriter, format string, args ...any) {
	writeJSON(w, http.StatusNotFound, errorResponse{
		Error: errorBody{
			Code:    string(errors.ErrCodeNotFound),
			Message: fmt.Sprintf(format, args...),
		},
	})
}

func writeServiceUnavailable(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusServiceUnavailable, errorResponse{
		Error: errorBody{
			Code:    string(errors.ErrCodeStoreUnavailable),
			Message: msg,
		},
	})
}
