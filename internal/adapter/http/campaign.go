package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"creatormarket/internal/core/domain"
)

// campaignRequest is the wire shape for creating or updating a campaign.
type campaignRequest struct {
	Title                     string   `json:"title"`
	BudgetMin                 int64    `json:"budget_min"`
	BudgetMax                 int64    `json:"budget_max"`
	AudienceMin               int64    `json:"audience_min"`
	AudienceMax               int64    `json:"audience_max"`
	TargetCount               int      `json:"target_count"`
	ContentTypes              []string `json:"content_types"`
	Platforms                 []string `json:"platforms"`
	TargetCountries           []string `json:"target_countries,omitempty"`
	TargetInterests           []string `json:"target_interests,omitempty"`
	ExcludedProductCategories []string `json:"excluded_product_categories,omitempty"`
}

func (req campaignRequest) toDomain(id, advertiserID uuid.UUID) *domain.Campaign {
	return &domain.Campaign{
		ID:                        id,
		AdvertiserID:              advertiserID,
		Title:                     req.Title,
		BudgetMin:                 req.BudgetMin,
		BudgetMax:                 req.BudgetMax,
		AudienceMin:               req.AudienceMin,
		AudienceMax:               req.AudienceMax,
		TargetCount:               req.TargetCount,
		ContentTypes:              req.ContentTypes,
		Platforms:                 req.Platforms,
		TargetCountries:           req.TargetCountries,
		TargetInterests:           req.TargetInterests,
		ExcludedProductCategories: req.ExcludedProductCategories,
	}
}

type campaignResponse struct {
	ID                        uuid.UUID `json:"id"`
	AdvertiserID              uuid.UUID `json:"advertiser_id"`
	Title                     string    `json:"title"`
	Status                    string    `json:"status"`
	BudgetMin                 int64     `json:"budget_min"`
	BudgetMax                 int64     `json:"budget_max"`
	AudienceMin               int64     `json:"audience_min"`
	AudienceMax               int64     `json:"audience_max"`
	TargetCount               int       `json:"target_count"`
	ContentTypes              []string  `json:"content_types"`
	Platforms                 []string  `json:"platforms"`
	TargetCountries           []string  `json:"target_countries,omitempty"`
	TargetInterests           []string  `json:"target_interests,omitempty"`
	ExcludedProductCategories []string  `json:"excluded_product_categories,omitempty"`
	SentCount                 int       `json:"sent_count"`
	AcceptedCount             int       `json:"accepted_count"`
	CompletedCount            int       `json:"completed_count"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

func toCampaignResponse(c *domain.Campaign) campaignResponse {
	return campaignResponse{
		ID:                        c.ID,
		AdvertiserID:              c.AdvertiserID,
		Title:                     c.Title,
		Status:                    c.Status,
		BudgetMin:                 c.BudgetMin,
		BudgetMax:                 c.BudgetMax,
		AudienceMin:               c.AudienceMin,
		AudienceMax:               c.AudienceMax,
		TargetCount:               c.TargetCount,
		ContentTypes:              c.ContentTypes,
		Platforms:                 c.Platforms,
		TargetCountries:           c.TargetCountries,
		TargetInterests:           c.TargetInterests,
		ExcludedProductCategories: c.ExcludedProductCategories,
		SentCount:                 c.SentCount,
		AcceptedCount:             c.AcceptedCount,
		CompletedCount:            c.CompletedCount,
		CreatedAt:                 c.CreatedAt,
		UpdatedAt:                 c.UpdatedAt,
	}
}

func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	requester, ok := h.requesterID(w, r)
	if !ok {
		return
	}
	var req campaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	c := req.toDomain(uuid.Nil, requester)
	if err := h.svc.CreateCampaign(r.Context(), c); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toCampaignResponse(c))
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	c, err := h.svc.GetCampaign(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(c))
}

func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	requester, ok := h.requesterID(w, r)
	if !ok {
		return
	}
	campaigns, err := h.svc.ListCampaigns(r.Context(), requester)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]campaignResponse, 0, len(campaigns))
	for i := range campaigns {
		out = append(out, toCampaignResponse(&campaigns[i]))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	requester, ok := h.requesterID(w, r)
	if !ok {
		return
	}
	var req campaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	c := req.toDomain(id, requester)
	if err := h.svc.UpdateCampaign(r.Context(), requester, c); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(c))
}
