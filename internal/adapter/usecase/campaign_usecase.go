package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"creatormarket/internal/core/domain"
	"creatormarket/internal/core/match"
	"creatormarket/internal/core/port"
	"creatormarket/internal/ratelimit"
)

// notifyConcurrency bounds the post-pass notification fan-out.
const notifyConcurrency = 4

// CampaignUseCase implements port.CampaignUseCase. It orchestrates the
// match engine, capacity allocation and rate limiting into one dispatch
// pass per campaign launch. All storage access goes through the outbound
// ports so the orchestration itself stays testable with fakes.
type CampaignUseCase struct {
	campaigns port.CampaignStore
	listings  port.CandidateRepository
	offers    port.OfferStore
	limiter   *ratelimit.Service
	notifier  port.Notifier
	engine    *match.Engine
	logger    *slog.Logger

	overbookingRate float64
}

// New creates the usecase. A negative overbooking rate falls back to the
// default of 0.25.
func New(
	campaigns port.CampaignStore,
	listings port.CandidateRepository,
	offers port.OfferStore,
	limiter *ratelimit.Service,
	notifier port.Notifier,
	overbookingRate float64,
	logger *slog.Logger,
) *CampaignUseCase {
	if overbookingRate < 0 {
		overbookingRate = match.DefaultOverbookingRate
	}
	return &CampaignUseCase{
		campaigns:       campaigns,
		listings:        listings,
		offers:          offers,
		limiter:         limiter,
		notifier:        notifier,
		engine:          match.NewEngine(),
		logger:          logger,
		overbookingRate: overbookingRate,
	}
}

// CreateCampaign validates and stores a new draft campaign.
func (u *CampaignUseCase) CreateCampaign(ctx context.Context, c *domain.Campaign) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.Status = domain.CampaignStatusDraft
	c.SentCount, c.AcceptedCount, c.CompletedCount = 0, 0, 0
	if err := c.Validate(); err != nil {
		return err
	}
	return u.campaigns.Create(ctx, c)
}

func (u *CampaignUseCase) GetCampaign(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	c, err := u.campaigns.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCampaignNotFound
	}
	return c, nil
}

func (u *CampaignUseCase) ListCampaigns(ctx context.Context, advertiserID uuid.UUID) ([]domain.Campaign, error) {
	return u.campaigns.ListByAdvertiser(ctx, advertiserID)
}

// UpdateCampaign replaces the targeting fields of a draft campaign owned
// by the requester. Status and counters are never taken from the request.
func (u *CampaignUseCase) UpdateCampaign(ctx context.Context, requesterID uuid.UUID, c *domain.Campaign) error {
	existing, err := u.GetCampaign(ctx, c.ID)
	if err != nil {
		return err
	}
	if existing.AdvertiserID != requesterID {
		return domain.ErrNotCampaignOwner
	}
	if existing.Status != domain.CampaignStatusDraft {
		return fmt.Errorf("%w: only draft campaigns may be updated", domain.ErrInvalidCampaignStatus)
	}
	c.AdvertiserID = existing.AdvertiserID
	c.Status = existing.Status
	c.SentCount = existing.SentCount
	c.AcceptedCount = existing.AcceptedCount
	c.CompletedCount = existing.CompletedCount
	if err := c.Validate(); err != nil {
		return err
	}
	return u.campaigns.Update(ctx, c)
}

// Launch runs one dispatch pass: validate, transition draft→active as the
// mutual-exclusion gate, fetch and match candidates, rank by value metric,
// allocate invitations and dispatch them in ranked order. Per-candidate
// failures are isolated; a fetch failure aborts the pass and reverts the
// status transition so the campaign can be launched again.
func (u *CampaignUseCase) Launch(ctx context.Context, campaignID, requesterID uuid.UUID) (*port.DispatchSummary, error) {
	c, err := u.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if c.AdvertiserID != requesterID {
		return nil, domain.ErrNotCampaignOwner
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if !c.Dispatchable() {
		return nil, fmt.Errorf("%w: campaign is %s, want %s", domain.ErrInvalidCampaignStatus, c.Status, domain.CampaignStatusDraft)
	}

	ok, err := u.campaigns.CompareAndSetStatus(ctx, c.ID, domain.CampaignStatusDraft, domain.CampaignStatusActive)
	if err != nil {
		return nil, fmt.Errorf("activating campaign: %w", err)
	}
	if !ok {
		// lost the race against a concurrent launch
		return nil, fmt.Errorf("%w: campaign is no longer in draft", domain.ErrInvalidCampaignStatus)
	}

	pool, err := u.listings.ListEligible(ctx, c.Platforms, c.AdvertiserID)
	if err != nil {
		u.revertActivation(ctx, c.ID)
		return nil, fmt.Errorf("loading candidate pool: %w", err)
	}

	matches := u.engine.Evaluate(c, pool)
	match.Rank(matches)

	invites := match.InvitesFor(c.TargetCount, u.overbookingRate, len(matches))
	selected := matches[:invites]

	summary := &port.DispatchSummary{}
	sent := make([]domain.Offer, 0, len(selected))
	for _, m := range selected {
		if !u.limiter.Allowed(ctx, c.AdvertiserID, m.CreatorID) {
			summary.Skipped++
			continue
		}
		offer := domain.BuildOffer(c, m, c.AdvertiserID)
		inserted, err := u.offers.InsertUnlessRecent(ctx, &offer, u.limiter.Window())
		if err != nil {
			summary.Failed++
			u.logger.Error("offer creation failed",
				slog.String("campaign_id", c.ID.String()),
				slog.String("creator_id", m.CreatorID.String()),
				slog.Any("error", err))
			continue
		}
		if !inserted {
			summary.Skipped++
			continue
		}
		summary.Sent++
		sent = append(sent, offer)
	}

	if summary.Sent > 0 {
		if err := u.campaigns.AddSentCount(ctx, c.ID, summary.Sent); err != nil {
			// offers are already out; the counter stays recomputable from
			// the offer store
			u.logger.Error("persisting sent count failed",
				slog.String("campaign_id", c.ID.String()),
				slog.Any("error", err))
		}
	}

	u.notifyAll(ctx, sent)

	u.logger.Info("dispatch pass completed",
		slog.String("campaign_id", c.ID.String()),
		slog.Int("matched", len(matches)),
		slog.Int("invited", invites),
		slog.Int("sent", summary.Sent),
		slog.Int("skipped", summary.Skipped),
		slog.Int("failed", summary.Failed))
	return summary, nil
}

// revertActivation undoes the draft→active transition after a fatal fetch
// failure so the launch can be retried. Best effort only.
func (u *CampaignUseCase) revertActivation(ctx context.Context, id uuid.UUID) {
	if _, err := u.campaigns.CompareAndSetStatus(ctx, id, domain.CampaignStatusActive, domain.CampaignStatusDraft); err != nil {
		u.logger.Error("reverting campaign activation failed",
			slog.String("campaign_id", id.String()),
			slog.Any("error", err))
	}
}

// notifyAll fans notifications out with bounded concurrency. Notification
// outcomes never affect the pass summary.
func (u *CampaignUseCase) notifyAll(ctx context.Context, offers []domain.Offer) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(notifyConcurrency)
	for _, o := range offers {
		o := o
		g.Go(func() error {
			u.notifier.Notify(gctx, o)
			return nil
		})
	}
	_ = g.Wait()
}

// Pause closes an active campaign. No dispatch side effects.
func (u *CampaignUseCase) Pause(ctx context.Context, campaignID, requesterID uuid.UUID) error {
	return u.transition(ctx, campaignID, requesterID, domain.CampaignStatusActive, domain.CampaignStatusClosed)
}

// Resume reopens a closed campaign. It does not re-trigger a dispatch
// pass; newly eligible candidates are only reached by a fresh campaign.
func (u *CampaignUseCase) Resume(ctx context.Context, campaignID, requesterID uuid.UUID) error {
	return u.transition(ctx, campaignID, requesterID, domain.CampaignStatusClosed, domain.CampaignStatusActive)
}

func (u *CampaignUseCase) transition(ctx context.Context, campaignID, requesterID uuid.UUID, from, to string) error {
	c, err := u.GetCampaign(ctx, campaignID)
	if err != nil {
		return err
	}
	if c.AdvertiserID != requesterID {
		return domain.ErrNotCampaignOwner
	}
	ok, err := u.campaigns.CompareAndSetStatus(ctx, campaignID, from, to)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: campaign is %s, want %s", domain.ErrInvalidCampaignStatus, c.Status, from)
	}
	return nil
}

// PreviewMatches applies only the platform and audience filters and caps
// the result at the campaign's remaining headroom. Purely informational;
// the dispatch pass never consults it.
func (u *CampaignUseCase) PreviewMatches(ctx context.Context, campaignID uuid.UUID) ([]port.PreviewCandidate, error) {
	c, err := u.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	remaining := c.TargetCount - c.SentCount
	if remaining <= 0 {
		return []port.PreviewCandidate{}, nil
	}
	pool, err := u.listings.ListEligible(ctx, c.Platforms, c.AdvertiserID)
	if err != nil {
		return nil, fmt.Errorf("loading candidate pool: %w", err)
	}

	out := make([]port.PreviewCandidate, 0, remaining)
	for _, l := range pool {
		if l.FollowerCount < c.AudienceMin || l.FollowerCount > c.AudienceMax {
			continue
		}
		out = append(out, port.PreviewCandidate{
			ListingID:     l.ID,
			CreatorID:     l.CreatorID,
			Platform:      l.Platform,
			FollowerCount: l.FollowerCount,
		})
		if len(out) == remaining {
			break
		}
	}
	return out, nil
}

// CreateListing stores a new active listing for a creator.
func (u *CampaignUseCase) CreateListing(ctx context.Context, l *domain.CandidateListing) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if err := l.Validate(); err != nil {
		return err
	}
	l.Active = true
	l.Deleted = false
	return u.listings.Create(ctx, l)
}

func (u *CampaignUseCase) ListListings(ctx context.Context, creatorID uuid.UUID) ([]domain.CandidateListing, error) {
	return u.listings.ListByCreator(ctx, creatorID)
}

func (u *CampaignUseCase) CampaignOffers(ctx context.Context, campaignID uuid.UUID) ([]domain.Offer, error) {
	if _, err := u.GetCampaign(ctx, campaignID); err != nil {
		return nil, err
	}
	return u.offers.ListByCampaign(ctx, campaignID)
}

func (u *CampaignUseCase) CampaignStats(ctx context.Context, campaignID uuid.UUID) (*port.CampaignStats, error) {
	if _, err := u.GetCampaign(ctx, campaignID); err != nil {
		return nil, err
	}
	counts, err := u.offers.CountByStatus(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	stats := &port.CampaignStats{Offers: counts}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}
