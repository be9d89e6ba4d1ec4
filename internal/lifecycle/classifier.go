// Package lifecycle derives a subscription's status from its dates.
//
// Classification is a pure function of (start date, duration, now, warning
// window). It is executed on every read and never persisted: a subscription
// whose duration is extended reclassifies on the next fetch without any
// explicit reactivation step.
package lifecycle

import (
	"time"

	"github.com/afrikanet/satellite-console/internal/models"
)

// DefaultWarningWindowDays is the number of days before the end date at
// which a subscription flips from active to expiring. The effective value
// is owned by the server configuration; this is only its default.
const DefaultWarningWindowDays = 30

// EndDate returns the server-derived end of a subscription term:
// the start date plus the duration in calendar months.
func EndDate(startDate time.Time, durationMonths int) time.Time {
	return startDate.AddDate(0, durationMonths, 0)
}

// Classify maps an end date to a lifecycle status as of now.
//
// expired:  end date at or before now.
// expiring: end date in the future but within the warning window.
// active:   everything else.
func Classify(endDate, now time.Time, warningWindow time.Duration) string {
	switch {
	case !endDate.After(now):
		return models.StatusExpired
	case !endDate.After(now.Add(warningWindow)):
		return models.StatusExpiring
	default:
		return models.StatusActive
	}
}

// Window converts a warning window in days to a duration.
func Window(days int) time.Duration {
	return time.Duration(days) * 24 * time.Hour
}
