// Package scoring computes the quality rating of a supplier candidate
// from the volume of contact signals extracted from its site.
package scoring

import "math"

const (
	baseRating = 1.0
	maxRating  = 5.0

	emailWeight    = 0.8
	emailCeiling   = 2.0
	phoneWeight    = 0.6
	phoneCeiling   = 1.5
	whatsappWeight = 0.4
	whatsappCap    = 1.0
	addressBonus   = 0.5
)

// Rating scores a candidate on a 1.0-5.0 scale, one decimal place. Each
// signal kind contributes up to a fixed ceiling so a single noisy page
// cannot max the score through one channel alone. Deterministic and
// monotonically non-decreasing in every argument.
func Rating(emailCount, phoneCount, whatsappCount int, hasAddress bool) float64 {
	score := baseRating
	score += capped(float64(emailCount)*emailWeight, emailCeiling)
	score += capped(float64(phoneCount)*phoneWeight, phoneCeiling)
	score += capped(float64(whatsappCount)*whatsappWeight, whatsappCap)
	if hasAddress {
		score += addressBonus
	}
	if score > maxRating {
		score = maxRating
	}
	return math.Round(score*10) / 10
}

func capped(value, ceiling float64) float64 {
	if value > ceiling {
		return ceiling
	}
	return value
}
