package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"creatormarket/internal/core/domain"
)

type listingRequest struct {
	Platform                  string           `json:"platform"`
	FollowerCount             int64            `json:"follower_count"`
	PricingByFormat           map[string]int64 `json:"pricing_by_format"`
	SupportedFormats          []string         `json:"supported_formats"`
	TopAudienceCountries      []string         `json:"top_audience_countries,omitempty"`
	AudienceInterests         []string         `json:"audience_interests,omitempty"`
	ExcludedProductCategories []string         `json:"excluded_product_categories,omitempty"`
}

type listingResponse struct {
	ID                        uuid.UUID        `json:"id"`
	CreatorID                 uuid.UUID        `json:"creator_id"`
	Platform                  string           `json:"platform"`
	FollowerCount             int64            `json:"follower_count"`
	PricingByFormat           map[string]int64 `json:"pricing_by_format"`
	SupportedFormats          []string         `json:"supported_formats"`
	TopAudienceCountries      []string         `json:"top_audience_countries,omitempty"`
	AudienceInterests         []string         `json:"audience_interests,omitempty"`
	ExcludedProductCategories []string         `json:"excluded_product_categories,omitempty"`
	Active                    bool             `json:"active"`
	CreatedAt                 time.Time        `json:"created_at"`
}

func toListingResponse(l *domain.CandidateListing) listingResponse {
	return listingResponse{
		ID:                        l.ID,
		CreatorID:                 l.CreatorID,
		Platform:                  l.Platform,
		FollowerCount:             l.FollowerCount,
		PricingByFormat:           l.PricingByFormat,
		SupportedFormats:          l.SupportedFormats,
		TopAudienceCountries:      l.TopAudienceCountries,
		AudienceInterests:         l.AudienceInterests,
		ExcludedProductCategories: l.ExcludedProductCategories,
		Active:                    l.Active,
		CreatedAt:                 l.CreatedAt,
	}
}

func (h *Handler) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	requester, ok := h.requesterID(w, r)
	if !ok {
		return
	}
	var req listingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	l := &domain.CandidateListing{
		CreatorID:                 requester,
		Platform:                  req.Platform,
		FollowerCount:             req.FollowerCount,
		PricingByFormat:           req.PricingByFormat,
		SupportedFormats:          req.SupportedFormats,
		TopAudienceCountries:      req.TopAudienceCountries,
		AudienceInterests:         req.AudienceInterests,
		ExcludedProductCategories: req.ExcludedProductCategories,
	}
	if err := h.svc.CreateListing(r.Context(), l); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toListingResponse(l))
}

func (h *Handler) handleListListings(w http.ResponseWriter, r *http.Request) {
	requester, ok := h.requesterID(w, r)
	if !ok {
		return
	}
	listings, err := h.svc.ListListings(r.Context(), requester)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]listingResponse, 0, len(listings))
	for i := range listings {
		out = append(out, toListingResponse(&listings[i]))
	}
	h.writeJSON(w, http.StatusOK, out)
}
