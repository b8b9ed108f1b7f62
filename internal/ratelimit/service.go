package ratelimit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"creatormarket/internal/core/domain"
)

// DefaultWindow is the minimum time between repeat offers from the same
// advertiser to the same creator.
const DefaultWindow = time.Hour

// InteractionLog is the slice of the offer store the limiter reads:
// time-stamped interactions between an advertiser and a creator with an
// offer status attached.
type InteractionLog interface {
	FindRecent(ctx context.Context, advertiserID, creatorID uuid.UUID, statuses []string, since time.Time) ([]domain.Offer, error)
}

// Service enforces the cool-down window between two parties. A pair is
// blocked while an offer in an open status (pending or accepted) exists
// between them inside the trailing window.
type Service struct {
	log    InteractionLog
	window time.Duration
	logger *slog.Logger
	now    func() time.Time
}

func NewService(log InteractionLog, window time.Duration, logger *slog.Logger) *Service {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Service{log: log, window: window, logger: logger, now: time.Now}
}

// Window returns the configured cool-down duration.
func (s *Service) Window() time.Duration {
	return s.window
}

// Allowed reports whether a new offer may be sent from the advertiser to
// the creator. Lookup failures fail open: a transient read error must not
// halt a whole dispatch pass, at the cost of occasionally letting a repeat
// offer through. The authoritative guard is the store's conditional
// insert.
func (s *Service) Allowed(ctx context.Context, advertiserID, creatorID uuid.UUID) bool {
	since := s.now().Add(-s.window)
	recent, err := s.log.FindRecent(ctx, advertiserID, creatorID, domain.OpenOfferStatuses, since)
	if err != nil {
		s.logger.Warn("rate-limit lookup failed, allowing send",
			slog.String("advertiser_id", advertiserID.String()),
			slog.String("creator_id", creatorID.String()),
			slog.Any("error", err))
		return true
	}
	return len(recent) == 0
}
