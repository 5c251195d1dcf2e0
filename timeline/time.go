// Package timeline provides a second-granularity instant type and a
// chronologically sorted series container used for price histories and
// holdings snapshots.
package timeline

import (
	"fmt"
	"strconv"
	"time"
)

// Day is the window used for 24h change computations.
const Day = 24 * time.Hour

// Formats accepted when parsing an instant from user input.
// The time part is optional, with hours in 0-23.
const (
	DateFormat     = "2006/01/02"
	DatetimeFormat = "2006/01/02 15:04:05"
)

// Time is an instant with second granularity, stored as unix seconds.
// The zero value means "unspecified" and is interpreted as "now" by
// operations that accept an optional instant.
type Time int64

// Now returns the current instant.
func Now() Time { return Time(time.Now().Unix()) }

// Unix returns the instant for the given unix seconds.
func Unix(sec int64) Time { return Time(sec) }

// Parse reads an instant from its textual form. It accepts the date and
// datetime formats as well as a raw unix-seconds integer.
func Parse(s string) (Time, error) {
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Time(sec), nil
	}
	for _, format := range []string{DatetimeFormat, DateFormat} {
		if t, err := time.ParseInLocation(format, s, time.Local); err == nil {
			return Time(t.Unix()), nil
		}
	}
	return 0, fmt.Errorf("invalid instant %q: want %q or %q", s, DateFormat, DatetimeFormat)
}

// MustParse is like Parse but panics on error. For tests and constants.
func MustParse(s string) Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Unix returns the instant as unix seconds.
func (t Time) Unix() int64 { return int64(t) }

// IsZero reports whether the instant is unspecified.
func (t Time) IsZero() bool { return t == 0 }

// Before reports whether t is strictly before x.
func (t Time) Before(x Time) bool { return t < x }

// After reports whether t is strictly after x.
func (t Time) After(x Time) bool { return t > x }

// Add returns the instant shifted by d, truncated to the second.
func (t Time) Add(d time.Duration) Time { return t + Time(d/time.Second) }

// AsTime returns the instant as a stdlib time.Time in the local zone.
func (t Time) AsTime() time.Time { return time.Unix(int64(t), 0) }

// String formats the instant in the datetime format.
func (t Time) String() string { return t.AsTime().Format(DatetimeFormat) }
