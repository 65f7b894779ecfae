package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/promptsmith/promptsmith/internal/audit"
	"github.com/promptsmith/promptsmith/internal/prompt"
)

type PromptHandler struct {
	svc   *prompt.Service
	audit *audit.Service
}

func NewPromptHandler(svc *prompt.Service, auditSvc *audit.Service) *PromptHandler {
	return &PromptHandler{svc: svc, audit: auditSvc}
}

func (h *PromptHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in prompt.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.logAudit(r, "prompt.create", &p.ID)
	writeJSON(w, http.StatusCreated, p)
}

func (h *PromptHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := prompt.SearchFilter{
		Query:  q.Get("query"),
		Folder: q.Get("folder"),
		Tags:   q["tag"],
	}

	prompts, err := h.svc.Search(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"prompts": prompts, "count": len(prompts)})
}

func (h *PromptHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	p, versions, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"prompt": p, "versions": versions})
}

func (h *PromptHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var in prompt.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	p, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.logAudit(r, "prompt.update", &p.ID)
	writeJSON(w, http.StatusOK, p)
}

func (h *PromptHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	h.logAudit(r, "prompt.delete", &id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *PromptHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	p, err := h.svc.Duplicate(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.logAudit(r, "prompt.duplicate", &p.ID)
	writeJSON(w, http.StatusCreated, p)
}

type createVersionRequest struct {
	Body  string `json:"body_md"`
	Notes string `json:"notes"`
}

func (h *PromptHandler) CreateVersion(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req createVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	v, err := h.svc.CreateVersion(r.Context(), id, req.Body, req.Notes)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.logAudit(r, "prompt.create_version", &id)
	writeJSON(w, http.StatusCreated, v)
}

func (h *PromptHandler) RestoreVersion(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	promptID, err := h.svc.RestoreVersion(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.logAudit(r, "prompt.restore_version", &promptID)
	writeJSON(w, http.StatusOK, map[string]string{"prompt_id": promptID.String()})
}

type renderRequest struct {
	Variables map[string]string `json:"variables"`
}

// Render fills a prompt's {{variable}} placeholders for the playground.
func (h *PromptHandler) Render(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	p, _, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rendered":  prompt.Render(p.Body, req.Variables),
		"variables": prompt.ExtractVariables(p.Body),
	})
}

func (h *PromptHandler) logAudit(r *http.Request, action string, resourceID *uuid.UUID) {
	if h.audit == nil {
		return
	}
	err := h.audit.Log(r.Context(), audit.LogEntry{
		Action:       action,
		ResourceType: "prompt",
		ResourceID:   resourceID,
	})
	if err != nil {
		slog.Warn("audit write failed", "action", action, "error", err)
	}
}

func parseID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	var verr prompt.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Error()})
	case errors.Is(err, prompt.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	case errors.Is(err, prompt.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
