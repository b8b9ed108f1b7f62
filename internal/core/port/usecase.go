package port

import (
	"context"

	"github.com/google/uuid"

	"creatormarket/internal/core/domain"
)

// CampaignUseCase defines the business operations exposed by the matching
// and dispatch engine. This is the primary port into the application
// domain; the HTTP adapter depends on it rather than on the concrete
// implementation.
type CampaignUseCase interface {
	// CreateCampaign validates and stores a new draft campaign. The
	// campaign's ID, status and timestamps are assigned here.
	CreateCampaign(ctx context.Context, c *domain.Campaign) error

	GetCampaign(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
	ListCampaigns(ctx context.Context, advertiserID uuid.UUID) ([]domain.Campaign, error)

	// UpdateCampaign replaces the targeting fields of a draft campaign.
	// Only the owner may update, and only while the campaign is in draft.
	UpdateCampaign(ctx context.Context, requesterID uuid.UUID, c *domain.Campaign) error

	// Launch runs one full dispatch pass for a draft campaign owned by
	// requesterID and transitions it to active. It returns the per-pass
	// outcome counts.
	Launch(ctx context.Context, campaignID, requesterID uuid.UUID) (*DispatchSummary, error)

	// Pause and Resume are status transitions only; neither triggers a
	// dispatch pass.
	Pause(ctx context.Context, campaignID, requesterID uuid.UUID) error
	Resume(ctx context.Context, campaignID, requesterID uuid.UUID) error

	// PreviewMatches returns a lightweight, non-authoritative candidate
	// preview filtered by platform and audience bounds only. It must not
	// be used to drive dispatch decisions.
	PreviewMatches(ctx context.Context, campaignID uuid.UUID) ([]PreviewCandidate, error)

	CreateListing(ctx context.Context, l *domain.CandidateListing) error
	ListListings(ctx context.Context, creatorID uuid.UUID) ([]domain.CandidateListing, error)

	CampaignOffers(ctx context.Context, campaignID uuid.UUID) ([]domain.Offer, error)
	CampaignStats(ctx context.Context, campaignID uuid.UUID) (*CampaignStats, error)
}

// DispatchSummary reports the outcome of one dispatch pass. Skipped counts
// rate-limited candidates; Failed counts isolated per-candidate persistence
// failures. Neither is an error condition for the pass itself.
type DispatchSummary struct {
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// PreviewCandidate is a UI-facing projection of a listing that passed the
// preview filters. It carries no pricing because the preview path never
// evaluates price.
type PreviewCandidate struct {
	ListingID     uuid.UUID `json:"listing_id"`
	CreatorID     uuid.UUID `json:"creator_id"`
	Platform      string    `json:"platform"`
	FollowerCount int64     `json:"follower_count"`
}

// CampaignStats aggregates the campaign's offers by status.
type CampaignStats struct {
	Offers map[string]int64 `json:"offers"`
	Total  int64            `json:"total"`
}
