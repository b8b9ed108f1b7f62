package db

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo advertisers, campaigns and creator listings so a
// fresh database has something to match against.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	platforms := []string{"instagram", "tiktok", "youtube"}
	formats := []string{"video", "story", "reel"}
	countries := []string{"US", "CA", "GB", "DE", "BR"}
	interests := []string{"fitness", "gaming", "cooking", "travel", "fashion"}

	// creator listings
	for i := 0; i < 40; i++ {
		creatorID := uuid.New()
		platform := platforms[r.Intn(len(platforms))]
		followers := int64(1000 + r.Intn(200000))

		pricing := map[string]int64{}
		supported := []string{}
		for _, f := range formats {
			if r.Intn(3) > 0 {
				supported = append(supported, f)
				pricing[f] = int64(2000 + r.Intn(48000))
			}
		}
		if len(supported) == 0 {
			supported = []string{"video"}
			pricing["video"] = 5000
		}
		pricingJSON, err := json.Marshal(pricing)
		if err != nil {
			return err
		}

		_, err = db.Exec(ctx, `INSERT INTO listings
			(id, creator_id, platform, follower_count, pricing_by_format,
			 supported_formats, top_audience_countries, audience_interests,
			 excluded_product_categories, active, deleted, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,TRUE,FALSE,now(),now())
			ON CONFLICT DO NOTHING`,
			uuid.New(), creatorID, platform, followers, pricingJSON,
			supported,
			[]string{countries[r.Intn(len(countries))], countries[r.Intn(len(countries))]},
			[]string{interests[r.Intn(len(interests))], interests[r.Intn(len(interests))]},
			[]string{})
		if err != nil {
			return err
		}
	}

	// draft campaigns
	for i := 1; i <= 3; i++ {
		_, err := db.Exec(ctx, `INSERT INTO campaigns
			(id, advertiser_id, title, status, budget_min, budget_max,
			 audience_min, audience_max, target_count, content_types, platforms,
			 target_countries, target_interests, excluded_product_categories,
			 sent_count, accepted_count, completed_count, created_at, updated_at)
			VALUES ($1,$2,$3,'draft',$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,0,0,0,now(),now())
			ON CONFLICT DO NOTHING`,
			uuid.New(), uuid.New(), fmt.Sprintf("Demo campaign %d", i),
			int64(1000), int64(50000),
			int64(1000), int64(150000), 4,
			[]string{"video", "story"}, []string{platforms[r.Intn(len(platforms))]},
			[]string{"US", "CA"}, []string{}, []string{})
		if err != nil {
			return err
		}
	}
	return nil
}
