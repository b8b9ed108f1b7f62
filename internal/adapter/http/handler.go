package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"creatormarket/internal/core/domain"
	"creatormarket/internal/core/port"
)

// requesterHeader carries the authenticated party's ID. Authentication
// itself is owned by an upstream gateway; this service only trusts the
// header it forwards.
const requesterHeader = "X-Requester-ID"

// Handler is the inbound HTTP adapter. It holds the usecase port and a
// logger, and registers all routes on a chi.Router.
type Handler struct {
	svc    port.CampaignUseCase
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc port.CampaignUseCase, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", h.handleCreateCampaign)
			r.Get("/", h.handleListCampaigns)
			r.Get("/{id}", h.handleGetCampaign)
			r.Patch("/{id}", h.handleUpdateCampaign)
			r.Post("/{id}/launch", h.handleLaunch)
			r.Post("/{id}/pause", h.handlePause)
			r.Post("/{id}/resume", h.handleResume)
			r.Get("/{id}/preview", h.handlePreview)
			r.Get("/{id}/offers", h.handleCampaignOffers)
			r.Get("/{id}/stats", h.handleCampaignStats)
		})
		r.Route("/listings", func(r chi.Router) {
			r.Post("/", h.handleCreateListing)
			r.Get("/", h.handleListListings)
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// pathID parses the {id} path parameter. A false result means the
// response has already been written.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// requesterID reads the requester header. A false result means the
// response has already been written.
func (h *Handler) requesterID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.Header.Get(requesterHeader))
	if err != nil {
		http.Error(w, "missing or invalid "+requesterHeader+" header", http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return id, true
}

// writeJSON encodes v with the given status. Encoding failures are logged;
// by then the status line is already out.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError maps domain errors onto HTTP statuses. Anything unmapped is
// an internal error and its detail stays out of the response.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCampaignNotFound), errors.Is(err, domain.ErrListingNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrNotCampaignOwner):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, domain.ErrInvalidCampaignStatus):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrInvalidCampaign), errors.Is(err, domain.ErrInvalidListing):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
