package domain

import (
	"math"

	"github.com/google/uuid"
)

// MatchCandidate is the single best-priced eligible listing for one
// creator against one campaign. It is derived fresh per dispatch pass and
// never persisted.
type MatchCandidate struct {
	CreatorID     uuid.UUID
	ListingID     uuid.UUID
	Platform      string
	FollowerCount int64
	ChosenFormat  string
	Price         int64
}

// ValueMetric is price per follower; lower is better value. A candidate
// with no followers yields +Inf so it ranks last.
func (m MatchCandidate) ValueMetric() float64 {
	if m.FollowerCount <= 0 {
		return math.Inf(1)
	}
	return float64(m.Price) / float64(m.FollowerCount)
}
