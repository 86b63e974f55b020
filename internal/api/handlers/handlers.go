package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dvloznov/keep2notion/internal/api/middleware"
)

// NotionDefaults are the credentials used when a request leaves them out.
type NotionDefaults struct {
	Token       string
	DatabaseURL string
}

func (d NotionDefaults) resolve(token, databaseURL string) (string, string) {
	if token == "" {
		token = d.Token
	}
	if databaseURL == "" {
		databaseURL = d.DatabaseURL
	}
	return token, databaseURL
}

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// decodeBody decodes a JSON request body into v and writes the error
// response itself when that fails.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		middleware.WriteError(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return false
	}

	middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
	return false
}
