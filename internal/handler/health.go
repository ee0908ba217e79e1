package handler

import (
	"net/http"
	"time"
)

// HandleHealth reports that the server is up.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleNotFound answers any request no route matched.
func HandleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Route "+r.URL.RequestURI()+" not found")
}
