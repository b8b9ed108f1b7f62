package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Campaign statuses. A campaign is created in draft, becomes active on
// launch and closed on pause. Resume moves it back to active without a
// new dispatch pass.
const (
	CampaignStatusDraft  = "draft"
	CampaignStatusActive = "active"
	CampaignStatusClosed = "closed"
)

// Campaign is an advertiser's targeting brief. Budgets and prices are
// stored in integer units (e.g. cents). Audience bounds apply to a
// listing's follower count.
type Campaign struct {
	ID           uuid.UUID
	AdvertiserID uuid.UUID
	Title        string
	Status       string
	BudgetMin    int64
	BudgetMax    int64
	AudienceMin  int64
	AudienceMax  int64
	TargetCount  int
	ContentTypes []string
	Platforms    []string

	// Optional targeting. An empty slice disables the corresponding filter;
	// ExcludedProductCategories is matched against the listing's own
	// declared exclusions.
	TargetCountries           []string
	TargetInterests           []string
	ExcludedProductCategories []string

	SentCount      int
	AcceptedCount  int
	CompletedCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the invariants required before a campaign may be stored
// or dispatched: non-inverted budget and audience ranges, a positive
// target and at least one platform and content type.
func (c *Campaign) Validate() error {
	if c.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidCampaign)
	}
	if c.BudgetMin < 0 || c.BudgetMax < c.BudgetMin {
		return fmt.Errorf("%w: budget range [%d, %d] is inverted", ErrInvalidCampaign, c.BudgetMin, c.BudgetMax)
	}
	if c.AudienceMin < 0 || c.AudienceMax < c.AudienceMin {
		return fmt.Errorf("%w: audience range [%d, %d] is inverted", ErrInvalidCampaign, c.AudienceMin, c.AudienceMax)
	}
	if c.TargetCount <= 0 {
		return fmt.Errorf("%w: target count must be positive", ErrInvalidCampaign)
	}
	if len(c.Platforms) == 0 {
		return fmt.Errorf("%w: at least one platform is required", ErrInvalidCampaign)
	}
	if len(c.ContentTypes) == 0 {
		return fmt.Errorf("%w: at least one content type is required", ErrInvalidCampaign)
	}
	return nil
}

// Dispatchable reports whether a dispatch pass may start for the campaign.
// Only draft campaigns dispatch; the draft→active transition doubles as the
// mutual-exclusion gate for concurrent launches.
func (c *Campaign) Dispatchable() bool {
	return c.Status == CampaignStatusDraft
}
