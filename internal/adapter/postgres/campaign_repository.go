package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"creatormarket/internal/core/domain"
)

// CampaignRepository implements port.CampaignStore using pgxpool.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

const campaignColumns = `id, advertiser_id, title, status,
	budget_min, budget_max, audience_min, audience_max, target_count,
	content_types, platforms, target_countries, target_interests,
	excluded_product_categories, sent_count, accepted_count,
	completed_count, created_at, updated_at`

func scanCampaign(row pgx.Row) (domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(
		&c.ID,
		&c.AdvertiserID,
		&c.Title,
		&c.Status,
		&c.BudgetMin,
		&c.BudgetMax,
		&c.AudienceMin,
		&c.AudienceMax,
		&c.TargetCount,
		&c.ContentTypes,
		&c.Platforms,
		&c.TargetCountries,
		&c.TargetInterests,
		&c.ExcludedProductCategories,
		&c.SentCount,
		&c.AcceptedCount,
		&c.CompletedCount,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func (r *CampaignRepository) Create(ctx context.Context, c *domain.Campaign) error {
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	_, err := r.pool.Exec(ctx, `INSERT INTO campaigns
		(id, advertiser_id, title, status, budget_min, budget_max,
		 audience_min, audience_max, target_count, content_types, platforms,
		 target_countries, target_interests, excluded_product_categories,
		 sent_count, accepted_count, completed_count, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)`,
		c.ID, c.AdvertiserID, c.Title, c.Status, c.BudgetMin, c.BudgetMax,
		c.AudienceMin, c.AudienceMax, c.TargetCount, c.ContentTypes, c.Platforms,
		c.TargetCountries, c.TargetInterests, c.ExcludedProductCategories,
		c.SentCount, c.AcceptedCount, c.CompletedCount, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *CampaignRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) ListByAdvertiser(ctx context.Context, advertiserID uuid.UUID) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE advertiser_id = $1 ORDER BY created_at DESC`,
		advertiserID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		return scanCampaign(row)
	})
}

func (r *CampaignRepository) Update(ctx context.Context, c *domain.Campaign) error {
	c.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx, `UPDATE campaigns SET
		title = $2, budget_min = $3, budget_max = $4,
		audience_min = $5, audience_max = $6, target_count = $7,
		content_types = $8, platforms = $9, target_countries = $10,
		target_interests = $11, excluded_product_categories = $12,
		updated_at = $13
		WHERE id = $1`,
		c.ID, c.Title, c.BudgetMin, c.BudgetMax,
		c.AudienceMin, c.AudienceMax, c.TargetCount,
		c.ContentTypes, c.Platforms, c.TargetCountries,
		c.TargetInterests, c.ExcludedProductCategories, c.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCampaignNotFound
	}
	return nil
}

// CompareAndSetStatus performs the transition in a single conditional
// update so concurrent callers cannot both win it.
func (r *CampaignRepository) CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE campaigns SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		id, from, to)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// AddSentCount increments the sent counter in place rather than
// overwriting it, so concurrent or repeated passes cannot erase history.
func (r *CampaignRepository) AddSentCount(ctx context.Context, id uuid.UUID, delta int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE campaigns SET sent_count = sent_count + $2, updated_at = now() WHERE id = $1`,
		id, delta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCampaignNotFound
	}
	return nil
}
