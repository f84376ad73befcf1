package pricing

import (
	"math"
	"time"
)

// minTimeToExpiry floors T so the downstream sqrt(T) and log terms never hit
// the T=0 singularity. Roughly 53 minutes in year units.
const minTimeToExpiry = 1e-4

// TimeToExpiry converts a target expiration date into a year fraction
// relative to now: max((target − now) in days / 365, 1e-4).
//
// It never fails: past-due and same-day expirations clamp to the floor
// rather than producing zero or negative T.
func TimeToExpiry(target, now time.Time) float64 {
	days := target.Sub(now).Hours() / 24
	return math.Max(days/365.0, minTimeToExpiry)
}
