package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"creatormarket/internal/core/domain"
)

// OfferRepository implements port.OfferStore using pgxpool. The offers
// table is append-only from this engine's perspective and doubles as the
// interaction log for rate limiting.
type OfferRepository struct {
	pool *pgxpool.Pool
}

func NewOfferRepository(pool *pgxpool.Pool) *OfferRepository {
	return &OfferRepository{pool: pool}
}

const offerColumns = `id, advertiser_id, creator_id, campaign_id, listing_id,
	status, proposed_price, currency, platform, format, created_at`

func scanOffer(row pgx.Row) (domain.Offer, error) {
	var o domain.Offer
	err := row.Scan(
		&o.ID,
		&o.AdvertiserID,
		&o.CreatorID,
		&o.CampaignID,
		&o.ListingID,
		&o.Status,
		&o.ProposedPrice,
		&o.Currency,
		&o.Platform,
		&o.Format,
		&o.CreatedAt,
	)
	return o, err
}

func (r *OfferRepository) Insert(ctx context.Context, o *domain.Offer) error {
	o.CreatedAt = time.Now().UTC()
	_, err := r.pool.Exec(ctx, `INSERT INTO offers
		(id, advertiser_id, creator_id, campaign_id, listing_id, status,
		 proposed_price, currency, platform, format, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		o.ID, o.AdvertiserID, o.CreatorID, o.CampaignID, o.ListingID, o.Status,
		o.ProposedPrice, o.Currency, o.Platform, o.Format, o.CreatedAt)
	return err
}

// InsertUnlessRecent is the atomic rate-limit gate: the existence check
// and the insert happen in one statement, so two concurrent dispatchers
// cannot both send to the same creator inside the window.
func (r *OfferRepository) InsertUnlessRecent(ctx context.Context, o *domain.Offer, window time.Duration) (bool, error) {
	o.CreatedAt = time.Now().UTC()
	since := o.CreatedAt.Add(-window)
	tag, err := r.pool.Exec(ctx, `INSERT INTO offers
		(id, advertiser_id, creator_id, campaign_id, listing_id, status,
		 proposed_price, currency, platform, format, created_at)
		SELECT $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11
		WHERE NOT EXISTS (
			SELECT 1 FROM offers
			WHERE advertiser_id = $2 AND creator_id = $3
			  AND status = ANY($12)
			  AND created_at >= $13
		)`,
		o.ID, o.AdvertiserID, o.CreatorID, o.CampaignID, o.ListingID, o.Status,
		o.ProposedPrice, o.Currency, o.Platform, o.Format, o.CreatedAt,
		domain.OpenOfferStatuses, since)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *OfferRepository) FindRecent(ctx context.Context, advertiserID, creatorID uuid.UUID, statuses []string, since time.Time) ([]domain.Offer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+offerColumns+` FROM offers
		 WHERE advertiser_id = $1 AND creator_id = $2
		   AND status = ANY($3) AND created_at >= $4
		 ORDER BY created_at DESC`,
		advertiserID, creatorID, statuses, since)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Offer, error) {
		return scanOffer(row)
	})
}

func (r *OfferRepository) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.Offer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+offerColumns+` FROM offers WHERE campaign_id = $1 ORDER BY created_at`,
		campaignID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Offer, error) {
		return scanOffer(row)
	})
}

func (r *OfferRepository) CountByStatus(ctx context.Context, campaignID uuid.UUID) (map[string]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT status, count(*) FROM offers WHERE campaign_id = $1 GROUP BY status`,
		campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			status string
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
