package notify

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"creatormarket/internal/core/domain"
)

// LogNotifier implements port.Notifier by emitting a structured log line
// per offer. Delivery channels (email, push) live behind the same port in
// the surrounding system; this service only needs the fire-and-forget
// contract. Outbound calls are paced with a token bucket so a large pass
// cannot flood the downstream collaborator.
type LogNotifier struct {
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewLogNotifier creates a notifier sending at most perSecond
// notifications with the given burst.
func NewLogNotifier(perSecond float64, burst int, logger *slog.Logger) *LogNotifier {
	if perSecond <= 0 {
		perSecond = 10
	}
	if burst <= 0 {
		burst = 1
	}
	return &LogNotifier{
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		logger:  logger,
	}
}

// Notify logs the offer once a rate token is available. A cancelled
// context drops the notification; dispatch outcomes never depend on it.
func (n *LogNotifier) Notify(ctx context.Context, o domain.Offer) {
	if err := n.limiter.Wait(ctx); err != nil {
		n.logger.Warn("offer notification dropped",
			slog.String("offer_id", o.ID.String()),
			slog.Any("error", err))
		return
	}
	n.logger.Info("offer notification",
		slog.String("offer_id", o.ID.String()),
		slog.String("campaign_id", o.CampaignID.String()),
		slog.String("creator_id", o.CreatorID.String()),
		slog.String("format", o.Format),
		slog.Int64("proposed_price", o.ProposedPrice))
}
