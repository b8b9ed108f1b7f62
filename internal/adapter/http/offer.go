package httpadapter

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"creatormarket/internal/core/domain"
)

type offerResponse struct {
	ID            uuid.UUID `json:"id"`
	AdvertiserID  uuid.UUID `json:"advertiser_id"`
	CreatorID     uuid.UUID `json:"creator_id"`
	CampaignID    uuid.UUID `json:"campaign_id"`
	ListingID     uuid.UUID `json:"listing_id"`
	Status        string    `json:"status"`
	ProposedPrice int64     `json:"proposed_price"`
	Currency      string    `json:"currency"`
	Platform      string    `json:"platform"`
	Format        string    `json:"format"`
	CreatedAt     time.Time `json:"created_at"`
}

func toOfferResponse(o *domain.Offer) offerResponse {
	return offerResponse{
		ID:            o.ID,
		AdvertiserID:  o.AdvertiserID,
		CreatorID:     o.CreatorID,
		CampaignID:    o.CampaignID,
		ListingID:     o.ListingID,
		Status:        o.Status,
		ProposedPrice: o.ProposedPrice,
		Currency:      o.Currency,
		Platform:      o.Platform,
		Format:        o.Format,
		CreatedAt:     o.CreatedAt,
	}
}

func (h *Handler) handleCampaignOffers(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	offers, err := h.svc.CampaignOffers(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]offerResponse, 0, len(offers))
	for i := range offers {
		out = append(out, toOfferResponse(&offers[i]))
	}
	h.writeJSON(w, http.StatusOK, out)
}

// handleCampaignStats returns the campaign's offers aggregated by status.
func (h *Handler) handleCampaignStats(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	stats, err := h.svc.CampaignStats(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}
