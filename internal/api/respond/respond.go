// Package respond provides the JSON response helpers shared by all
// handler packages.
package respond

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/good-yellow-bee/chatter/internal/chat"
)

// errorResponse is the error body every endpoint emits.
type errorResponse struct {
	Error string `json:"error"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// OK writes a 200 OK response.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Error writes a JSON error body with the given status code.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorResponse{Error: message})
}

// ServiceError translates a chat service error into the matching HTTP
// response. Store failures are logged here; the caller already returned.
func ServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *chat.ValidationError
		notFoundErr   *chat.NotFoundError
		forbiddenErr  *chat.ForbiddenError
		storeErr      *chat.StoreError
	)

	switch {
	case errors.As(err, &validationErr):
		Error(w, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &notFoundErr):
		Error(w, http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &forbiddenErr):
		Error(w, http.StatusForbidden, forbiddenErr.Error())
	case errors.As(err, &storeErr):
		log.Printf("%s %s: store error: %v", r.Method, r.URL.Path, err)
		if storeErr.IndexRequired() {
			Error(w, http.StatusInternalServerError,
				"The query requires an index. Create a composite index for the messages collection and retry.")
			return
		}
		Error(w, http.StatusInternalServerError, "internal server error")
	default:
		log.Printf("%s %s: unexpected error: %v", r.Method, r.URL.Path, err)
		Error(w, http.StatusInternalServerError, "internal server error")
	}
}
