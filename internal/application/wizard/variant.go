package wizard

import (
	"math/rand"

	"cancelflow/internal/domain/subscription"
)

// AssignVariant maps an optional user identifier to a pricing variant.
// The digest is the sum of the identifier's character codes, so it is
// order-independent: anagram identifiers land in the same bucket. That
// collision is accepted; the mechanism only has to give the same user
// the same price on repeat visits.
//
// Without an identifier the variant is drawn uniformly at random.
func AssignVariant(userID string) subscription.Variant {
	if userID == "" {
		if rand.Intn(2) == 0 {
			return subscription.VariantA
		}
		return subscription.VariantB
	}

	sum := 0
	for _, r := range userID {
		sum += int(r)
	}

	if sum%2 == 0 {
		return subscription.VariantA
	}
	return subscription.VariantB
}
