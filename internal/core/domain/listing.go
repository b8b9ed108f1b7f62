package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CandidateListing is a creator's offering on a single platform with
// per-format pricing and audience attributes. A creator may hold several
// listings across platforms; only listings on platforms a campaign
// targets are considered for matching.
type CandidateListing struct {
	ID            uuid.UUID
	CreatorID     uuid.UUID
	Platform      string
	FollowerCount int64

	// PricingByFormat maps content format name to a price in integer
	// units. Keys are matched case-insensitively during filtering.
	PricingByFormat map[string]int64

	SupportedFormats          []string
	TopAudienceCountries      []string
	AudienceInterests         []string
	ExcludedProductCategories []string

	Active  bool
	Deleted bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the minimum a listing needs before it can enter the
// candidate pool.
func (l *CandidateListing) Validate() error {
	if l.CreatorID == uuid.Nil {
		return fmt.Errorf("%w: creator id is required", ErrInvalidListing)
	}
	if strings.TrimSpace(l.Platform) == "" {
		return fmt.Errorf("%w: platform is required", ErrInvalidListing)
	}
	if l.FollowerCount < 0 {
		return fmt.Errorf("%w: follower count cannot be negative", ErrInvalidListing)
	}
	return nil
}
