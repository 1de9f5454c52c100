package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/w-h-a/doculyzer"
)

type handler struct {
	agent *doculyzer.Agent
}

type queryRequest struct {
	Prompt string `json:"prompt"`
}

type feedbackRequest struct {
	ResponseId string `json:"responseId"`
	Satisfied  bool   `json:"satisfied"`
}

type processRequest struct {
	DocumentName string `json:"documentName"`
}

func (h *handler) query(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Prompt) == 0 {
		http.Error(w, "Invalid request. Prompt is required.", http.StatusBadRequest)
		return
	}

	slog.InfoContext(r.Context(), "processing document query", "prompt", req.Prompt)

	result := h.agent.Query(r.Context(), req.Prompt)
	if !result.IsSuccessful {
		writeJSON(w, http.StatusInternalServerError, result)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *handler) feedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.ResponseId) == 0 {
		http.Error(w, "Invalid feedback request.", http.StatusBadRequest)
		return
	}

	result := h.agent.AttachFeedback(r.Context(), req.ResponseId, req.Satisfied)
	switch {
	case result.NotFound:
		writeJSON(w, http.StatusNotFound, result)
	case !result.Success:
		writeJSON(w, http.StatusInternalServerError, result)
	default:
		writeJSON(w, http.StatusOK, result)
	}
}

// process kicks off ingestion and returns immediately. The run gets a
// fresh context so a closed request connection cannot abort it mid-write.
func (h *handler) process(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.DocumentName) == 0 {
		http.Error(w, "Invalid request. Document name is required.", http.StatusBadRequest)
		return
	}

	go func() {
		result := h.agent.Ingest(context.Background(), req.DocumentName)
		if !result.Success {
			slog.Error("ingestion failed", "document", req.DocumentName, "error", result.ErrorMessage)
			return
		}
		slog.Info("ingestion finished", "document", req.DocumentName, "message", result.Message)
	}()

	w.WriteHeader(http.StatusAccepted)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
