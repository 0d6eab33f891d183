// Package biztime centralizes clock access. Timestamps are persisted in UTC and
// rendered in the configured business timezone for human-facing text.
package biztime

import (
	"fmt"
	"sync/atomic"
	"time"
)

var location atomic.Pointer[time.Location]

// Init sets the business timezone (IANA name, e.g. "America/New_York").
func Init(tz string) error {
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", tz, err)
	}
	location.Store(loc)
	return nil
}

// Location returns the business timezone, UTC until Init is called.
func Location() *time.Location {
	if loc := location.Load(); loc != nil {
		return loc
	}
	return time.UTC
}

func NowUTC() time.Time {
	return time.Now().UTC()
}

func ToBizTimezone(t time.Time) time.Time {
	return t.In(Location())
}

func FormatInBizTimezone(t time.Time, layout string) string {
	return ToBizTimezone(t).Format(layout)
}
