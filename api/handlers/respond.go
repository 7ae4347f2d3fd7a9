// ABOUTME: Response helpers shared by API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	"encoding/json"
	"net/http"

	coreerrors "pacereader-api/core/errors"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

// writeError maps domain errors onto HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case coreerrors.IsInvalidURL(err), coreerrors.IsValidation(err):
		status = http.StatusBadRequest
	case coreerrors.IsNotFound(err):
		status = http.StatusNotFound
	case coreerrors.IsNoContent(err):
		status = http.StatusUnprocessableEntity
	case coreerrors.IsNetwork(err):
		status = http.StatusBadGateway
	case coreerrors.IsParsing(err):
		status = http.StatusUnprocessableEntity
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}
