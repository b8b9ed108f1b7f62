package match

import "math"

// DefaultOverbookingRate is the fraction of extra invitations sent beyond
// the target headcount to offset expected declines and non-responses.
const DefaultOverbookingRate = 0.25

// InvitesFor returns the number of invitations to dispatch:
// min(ceil(targetCount × (1 + overbookingRate)), matchedCount). It is
// total over its inputs and never returns a negative count.
func InvitesFor(targetCount int, overbookingRate float64, matchedCount int) int {
	if targetCount <= 0 || matchedCount <= 0 {
		return 0
	}
	if overbookingRate < 0 {
		overbookingRate = 0
	}
	invites := int(math.Ceil(float64(targetCount) * (1 + overbookingRate)))
	if matchedCount < invites {
		invites = matchedCount
	}
	return invites
}
