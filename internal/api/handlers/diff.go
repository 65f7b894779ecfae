package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/promptsmith/promptsmith/internal/diff"
)

type DiffHandler struct{}

func NewDiffHandler() *DiffHandler {
	return &DiffHandler{}
}

type diffRequest struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// Diff exposes the line-diff engine so clients can render an optimized
// draft against the original without reimplementing the diff.
func (h *DiffHandler) Diff(w http.ResponseWriter, r *http.Request) {
	var req diffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	segments := diff.Lines(req.Before, req.After)
	writeJSON(w, http.StatusOK, map[string]interface{}{"segments": segments})
}
