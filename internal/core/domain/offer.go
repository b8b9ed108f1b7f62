package domain

import (
	"time"

	"github.com/google/uuid"
)

// Offer statuses. This engine creates offers as pending; the subsequent
// accept/decline/complete lifecycle is owned by the offer-management
// collaborator. Pending and accepted offers count toward the rate-limit
// window.
const (
	OfferStatusPending   = "pending"
	OfferStatusAccepted  = "accepted"
	OfferStatusDeclined  = "declined"
	OfferStatusCancelled = "cancelled"
	OfferStatusCompleted = "completed"
)

// OpenOfferStatuses are the statuses that block a repeat offer between the
// same advertiser and creator within the rate-limit window.
var OpenOfferStatuses = []string{OfferStatusPending, OfferStatusAccepted}

// Offer is a dispatched invitation from an advertiser to a creator. The
// rows double as the interaction log: advertiser, creator, status and
// created_at are all the rate limiter needs.
type Offer struct {
	ID            uuid.UUID
	AdvertiserID  uuid.UUID
	CreatorID     uuid.UUID
	CampaignID    uuid.UUID
	ListingID     uuid.UUID
	Status        string
	ProposedPrice int64
	Currency      string
	Platform      string
	Format        string
	CreatedAt     time.Time
}

// BuildOffer constructs the offer payload for a matched candidate. Pure
// construction, no I/O; the caller persists the result.
func BuildOffer(c *Campaign, m MatchCandidate, initiatorID uuid.UUID) Offer {
	return Offer{
		ID:            uuid.New(),
		AdvertiserID:  initiatorID,
		CreatorID:     m.CreatorID,
		CampaignID:    c.ID,
		ListingID:     m.ListingID,
		Status:        OfferStatusPending,
		ProposedPrice: m.Price,
		Currency:      "USD",
		Platform:      m.Platform,
		Format:        m.ChosenFormat,
	}
}
