package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/promptsmith/promptsmith/internal/optimize"
)

const minOptimizePromptLen = 10

// Optimizer is what the handler needs from the optimization service.
type Optimizer interface {
	Optimize(ctx context.Context, promptText, style string) (*optimize.Result, error)
}

type OptimizeHandler struct {
	svc Optimizer
}

func NewOptimizeHandler(svc Optimizer) *OptimizeHandler {
	return &OptimizeHandler{svc: svc}
}

type optimizeRequest struct {
	Prompt string `json:"prompt"`
	Style  string `json:"style,omitempty"`
}

func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if utf8.RuneCountInString(req.Prompt) < minOptimizePromptLen {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Provide more context to optimize"})
		return
	}

	result, err := h.svc.Optimize(r.Context(), req.Prompt, req.Style)
	switch {
	case errors.Is(err, optimize.ErrNotConfigured):
		// Mirrors the hosted frontend's contract: a missing credential is a
		// 500-class condition, not a client fault.
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "optimization provider not configured"})
		return
	case err != nil:
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "optimization failed"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}
