package handler

import "net/http"

// HandleIndex describes the API and its endpoint map.
func HandleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        "userfile",
		"description": "CRUD API over a file-backed user collection",
		"endpoints": map[string]string{
			"GET /users":         "List all users",
			"POST /users":        "Create a user",
			"PUT /users/{id}":    "Update a user",
			"DELETE /users/{id}": "Delete a user",
		},
	})
}
