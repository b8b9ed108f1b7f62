package match

import (
	"slices"

	"creatormarket/internal/core/domain"
)

// Filter is one stage of the listing filter pipeline. Apply receives the
// candidate formats surviving so far (nil before the content-type stage
// has run) and returns the narrowed formats plus whether the listing is
// still eligible. A listing fails fast at the first stage that returns
// false.
type Filter struct {
	Name  string
	Apply func(c *domain.Campaign, l *domain.CandidateListing, formats []string) ([]string, bool)
}

// Pipeline returns the filter stages in their fixed evaluation order:
// audience, content type, country, interest, category blacklist, price.
func Pipeline() []Filter {
	return []Filter{
		audienceFilter(),
		contentTypeFilter(),
		countryFilter(),
		interestFilter(),
		blacklistFilter(),
		priceFilter(),
	}
}

// audienceFilter requires the listing's follower count to fall within the
// campaign's audience bounds.
func audienceFilter() Filter {
	return Filter{
		Name: "audience",
		Apply: func(c *domain.Campaign, l *domain.CandidateListing, formats []string) ([]string, bool) {
			if l.FollowerCount < c.AudienceMin || l.FollowerCount > c.AudienceMax {
				return nil, false
			}
			return formats, true
		},
	}
}

// contentTypeFilter intersects the campaign's content types with the
// listing's supported formats. The intersection becomes the candidate
// format set for the later price stage; an empty intersection rejects
// the listing.
func contentTypeFilter() Filter {
	return Filter{
		Name: "content_type",
		Apply: func(c *domain.Campaign, l *domain.CandidateListing, _ []string) ([]string, bool) {
			supported := normalizeSet(l.SupportedFormats)
			var out []string
			for _, ct := range c.ContentTypes {
				n := Normalize(ct)
				if _, ok := supported[n]; ok && !slices.Contains(out, n) {
					out = append(out, n)
				}
			}
			if len(out) == 0 {
				return nil, false
			}
			return out, true
		},
	}
}

// countryFilter applies only when the campaign targets countries: the
// listing's top audience countries must intersect them.
func countryFilter() Filter {
	return Filter{
		Name: "country",
		Apply: func(c *domain.Campaign, l *domain.CandidateListing, formats []string) ([]string, bool) {
			if len(c.TargetCountries) == 0 {
				return formats, true
			}
			return formats, intersects(c.TargetCountries, l.TopAudienceCountries)
		},
	}
}

// interestFilter mirrors countryFilter for audience interests.
func interestFilter() Filter {
	return Filter{
		Name: "interest",
		Apply: func(c *domain.Campaign, l *domain.CandidateListing, formats []string) ([]string, bool) {
			if len(c.TargetInterests) == 0 {
				return formats, true
			}
			return formats, intersects(c.TargetInterests, l.AudienceInterests)
		},
	}
}

// blacklistFilter rejects the listing when the creator has pre-declared a
// conflict with any of the campaign's product categories.
func blacklistFilter() Filter {
	return Filter{
		Name: "category_blacklist",
		Apply: func(c *domain.Campaign, l *domain.CandidateListing, formats []string) ([]string, bool) {
			if len(c.ExcludedProductCategories) == 0 {
				return formats, true
			}
			return formats, !intersects(c.ExcludedProductCategories, l.ExcludedProductCategories)
		},
	}
}

// priceFilter keeps formats whose listed price is positive and within the
// campaign's budget range. Price keys are matched case-insensitively.
func priceFilter() Filter {
	return Filter{
		Name: "price",
		Apply: func(c *domain.Campaign, l *domain.CandidateListing, formats []string) ([]string, bool) {
			var out []string
			for _, f := range formats {
				price, ok := priceFor(l, f)
				if ok && price > 0 && price >= c.BudgetMin && price <= c.BudgetMax {
					out = append(out, f)
				}
			}
			if len(out) == 0 {
				return nil, false
			}
			return out, true
		},
	}
}

// priceFor looks up a listing price by normalized format name.
func priceFor(l *domain.CandidateListing, format string) (int64, bool) {
	want := Normalize(format)
	for k, v := range l.PricingByFormat {
		if Normalize(k) == want {
			return v, true
		}
	}
	return 0, false
}
