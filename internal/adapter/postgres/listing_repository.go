package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"creatormarket/internal/core/domain"
	"creatormarket/internal/core/match"
)

// ListingRepository implements port.CandidateRepository using pgxpool.
// Per-format pricing is stored as JSONB.
type ListingRepository struct {
	pool *pgxpool.Pool
}

func NewListingRepository(pool *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{pool: pool}
}

const listingColumns = `id, creator_id, platform, follower_count,
	pricing_by_format, supported_formats, top_audience_countries,
	audience_interests, excluded_product_categories, active, deleted,
	created_at, updated_at`

func scanListing(row pgx.Row) (domain.CandidateListing, error) {
	var (
		l          domain.CandidateListing
		pricingRaw []byte
	)
	err := row.Scan(
		&l.ID,
		&l.CreatorID,
		&l.Platform,
		&l.FollowerCount,
		&pricingRaw,
		&l.SupportedFormats,
		&l.TopAudienceCountries,
		&l.AudienceInterests,
		&l.ExcludedProductCategories,
		&l.Active,
		&l.Deleted,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return l, err
	}
	if len(pricingRaw) > 0 {
		err = json.Unmarshal(pricingRaw, &l.PricingByFormat)
	}
	return l, err
}

func (r *ListingRepository) Create(ctx context.Context, l *domain.CandidateListing) error {
	pricing, err := json.Marshal(l.PricingByFormat)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	l.CreatedAt, l.UpdatedAt = now, now
	_, err = r.pool.Exec(ctx, `INSERT INTO listings
		(id, creator_id, platform, follower_count, pricing_by_format,
		 supported_formats, top_audience_countries, audience_interests,
		 excluded_product_categories, active, deleted, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		l.ID, l.CreatorID, l.Platform, l.FollowerCount, pricing,
		l.SupportedFormats, l.TopAudienceCountries, l.AudienceInterests,
		l.ExcludedProductCategories, l.Active, l.Deleted, l.CreatedAt, l.UpdatedAt)
	return err
}

func (r *ListingRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]domain.CandidateListing, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+listingColumns+` FROM listings
		 WHERE creator_id = $1 AND NOT deleted ORDER BY created_at DESC`,
		creatorID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CandidateListing, error) {
		return scanListing(row)
	})
}

// ListEligible returns the candidate pool for a dispatch pass: live
// listings on any of the campaign's platforms, excluding the advertiser's
// own. Platform comparison is case-insensitive on both sides.
func (r *ListingRepository) ListEligible(ctx context.Context, platforms []string, excludeCreatorID uuid.UUID) ([]domain.CandidateListing, error) {
	normalized := make([]string, 0, len(platforms))
	for _, p := range platforms {
		if n := match.Normalize(p); n != "" {
			normalized = append(normalized, n)
		}
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+listingColumns+` FROM listings
		 WHERE active AND NOT deleted
		   AND creator_id <> $2
		   AND lower(trim(platform)) = ANY($1)
		 ORDER BY created_at`,
		normalized, excludeCreatorID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CandidateListing, error) {
		return scanListing(row)
	})
}
