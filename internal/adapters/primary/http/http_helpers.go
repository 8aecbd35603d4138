package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/tiny-panda1966/supportdesk/internal/core/errors"
)

// maxBodyBytes caps action request bodies.
const maxBodyBytes = 1 << 20

// DecodeJSON decodes the request body into a T. An empty body yields the
// zero value.
func DecodeJSON[T any](w http.ResponseWriter, r *http.Request) (*T, error) {
	var req T

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return nil, apperrors.NewBadRequestError(err, "Invalid request body")
	}

	return &req, nil
}

// ticketIDParam returns the {ticketID} path segment.
func ticketIDParam(r *http.Request) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, "ticketID"))
	if id == "" {
		return "", apperrors.NewBadRequestError(apperrors.ErrBadRequest, "Ticket ID is required")
	}
	return id, nil
}
