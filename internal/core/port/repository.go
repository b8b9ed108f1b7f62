package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"creatormarket/internal/core/domain"
)

// CampaignStore defines persistence for campaigns. It is an outbound port;
// implementations must make CompareAndSetStatus and AddSentCount atomic so
// concurrent launches cannot run a duplicate dispatch pass or lose counter
// updates.
type CampaignStore interface {
	Create(ctx context.Context, c *domain.Campaign) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
	ListByAdvertiser(ctx context.Context, advertiserID uuid.UUID) ([]domain.Campaign, error)
	Update(ctx context.Context, c *domain.Campaign) error

	// CompareAndSetStatus transitions the campaign from one status to
	// another and reports whether the transition was applied. A false
	// result means the campaign was not in the expected status.
	CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error)

	// AddSentCount atomically increments the campaign's sent counter.
	AddSentCount(ctx context.Context, id uuid.UUID, delta int) error
}

// CandidateRepository provides read access to candidate listings.
type CandidateRepository interface {
	Create(ctx context.Context, l *domain.CandidateListing) error
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]domain.CandidateListing, error)

	// ListEligible returns active, non-deleted listings on any of the given
	// platforms, excluding those owned by excludeCreatorID.
	ListEligible(ctx context.Context, platforms []string, excludeCreatorID uuid.UUID) ([]domain.CandidateListing, error)
}

// OfferStore persists dispatch outcomes. Offers are append-only from this
// engine's point of view; status changes belong to the external
// offer-management collaborator.
type OfferStore interface {
	Insert(ctx context.Context, o *domain.Offer) error

	// InsertUnlessRecent inserts the offer only when no offer in an open
	// status exists between the same advertiser and creator within the
	// trailing window. It reports whether the offer was inserted. The
	// check and the insert happen in a single statement so concurrent
	// dispatchers cannot both pass the check.
	InsertUnlessRecent(ctx context.Context, o *domain.Offer, window time.Duration) (bool, error)

	// FindRecent returns offers between the advertiser and creator with
	// one of the given statuses created at or after since.
	FindRecent(ctx context.Context, advertiserID, creatorID uuid.UUID, statuses []string, since time.Time) ([]domain.Offer, error)

	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.Offer, error)
	CountByStatus(ctx context.Context, campaignID uuid.UUID) (map[string]int64, error)
}

// Notifier delivers offer notifications to creators. Calls are
// fire-and-forget: failures are logged by the implementation and never
// affect a dispatch pass.
type Notifier interface {
	Notify(ctx context.Context, o domain.Offer)
}
