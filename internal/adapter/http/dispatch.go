package httpadapter

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// handleLaunch triggers the full dispatch pass for a draft campaign and
// returns the pass summary. The requester must be the campaign owner.
// Concurrent launches race on the status transition; losers get HTTP 409.
func (h *Handler) handleLaunch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	requester, ok := h.requesterID(w, r)
	if !ok {
		return
	}
	summary, err := h.svc.Launch(r.Context(), id, requester)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) handlePause(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, h.svc.Pause)
}

func (h *Handler) handleResume(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, h.svc.Resume)
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, campaignID, requesterID uuid.UUID) error) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	requester, ok := h.requesterID(w, r)
	if !ok {
		return
	}
	if err := op(r.Context(), id, requester); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePreview returns the non-authoritative candidate preview. It needs
// no requester header: the preview exposes only public listing attributes.
func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	preview, err := h.svc.PreviewMatches(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, preview)
}
