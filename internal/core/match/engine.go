package match

import (
	"sort"
	"strings"

	"creatormarket/internal/core/domain"
)

// Engine evaluates a candidate pool against a campaign's constraints. It
// is pure: identical campaign and listing snapshots always produce the
// identical ordered result.
type Engine struct {
	filters []Filter
}

// NewEngine returns an engine with the default filter pipeline.
func NewEngine() *Engine {
	return &Engine{filters: Pipeline()}
}

// Evaluate returns at most one MatchCandidate per creator: the cheapest
// eligible format across that creator's eligible listings. The result is
// ordered by creator ID; ranking by value metric is a separate step.
func (e *Engine) Evaluate(c *domain.Campaign, listings []domain.CandidateListing) []domain.MatchCandidate {
	best := make(map[string]domain.MatchCandidate)
	for i := range listings {
		l := &listings[i]
		if !e.eligible(c, l) {
			continue
		}
		cand, ok := e.evaluateListing(c, l)
		if !ok {
			continue
		}
		key := l.CreatorID.String()
		cur, seen := best[key]
		if !seen || cand.Price < cur.Price ||
			(cand.Price == cur.Price && cand.ListingID.String() < cur.ListingID.String()) {
			best[key] = cand
		}
	}

	out := make([]domain.MatchCandidate, 0, len(best))
	for _, cand := range best {
		out = append(out, cand)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatorID.String() < out[j].CreatorID.String()
	})
	return out
}

// eligible applies the pool preconditions: the creator must not be the
// advertiser, the listing must be live and its platform targeted by the
// campaign. The repository filters on the same conditions; re-checking
// here keeps the engine correct on arbitrary input.
func (e *Engine) eligible(c *domain.Campaign, l *domain.CandidateListing) bool {
	if l.CreatorID == c.AdvertiserID || !l.Active || l.Deleted {
		return false
	}
	for _, p := range c.Platforms {
		if Normalize(p) == Normalize(l.Platform) {
			return true
		}
	}
	return false
}

// evaluateListing runs the filter pipeline over one listing and, when it
// survives, selects the cheapest format. Formats are sorted by name before
// the minimum is taken so ties resolve deterministically.
func (e *Engine) evaluateListing(c *domain.Campaign, l *domain.CandidateListing) (domain.MatchCandidate, bool) {
	var formats []string
	for _, f := range e.filters {
		var ok bool
		formats, ok = f.Apply(c, l, formats)
		if !ok {
			return domain.MatchCandidate{}, false
		}
	}

	sort.Strings(formats)
	chosen := ""
	var chosenPrice int64
	for _, f := range formats {
		price, ok := priceFor(l, f)
		if !ok {
			continue
		}
		if chosen == "" || price < chosenPrice {
			chosen, chosenPrice = f, price
		}
	}
	if chosen == "" {
		return domain.MatchCandidate{}, false
	}

	return domain.MatchCandidate{
		CreatorID:     l.CreatorID,
		ListingID:     l.ID,
		Platform:      l.Platform,
		FollowerCount: l.FollowerCount,
		ChosenFormat:  chosen,
		Price:         chosenPrice,
	}, true
}

// Rank sorts candidates ascending by value metric. Candidates with an
// infinite metric (zero followers) sort last; equal metrics fall back to
// creator ID so the ranking is stable across runs.
func Rank(candidates []domain.MatchCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		vi, vj := candidates[i].ValueMetric(), candidates[j].ValueMetric()
		if vi != vj {
			return vi < vj
		}
		return strings.Compare(candidates[i].CreatorID.String(), candidates[j].CreatorID.String()) < 0
	})
}
