// Package calendar provides the date and hour arithmetic used to expand
// recurring reservations into unit occupancy slots.
package calendar

import (
	"errors"
	"fmt"
	"iter"
	"time"
)

// HourRange is a half-open span [Start, End) of whole hours within a day.
type HourRange struct {
	Start int
	End   int
}

// String renders the range in the HH-HH wire format.
func (r HourRange) String() string {
	return fmt.Sprintf("%02d-%02d", r.Start, r.End)
}

// Slot is a canonical one-hour interval [h, h+1). It is the atomic unit of
// conflict detection.
type Slot int

// Label renders the slot as HH:00-HH:00 for calendar display.
func (s Slot) Label() string {
	return fmt.Sprintf("%02d:00-%02d:00", int(s), int(s)+1)
}

// ErrMalformedRange indicates an hour range with inverted or out-of-bounds
// endpoints reached expansion.
var ErrMalformedRange = errors.New("calendar: malformed hour range")

// DatesInRange yields each date from start to end inclusive, one day at a
// time. The sequence is finite and restartable; times of day are discarded.
func DatesInRange(start, end time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		current := Midnight(start)
		last := Midnight(end)
		for !current.After(last) {
			if !yield(current) {
				return
			}
			current = current.AddDate(0, 0, 1)
		}
	}
}

// ExpandHourRanges emits one unit slot per integer hour covered by the given
// ranges, ordered by hour and de-duplicated across overlapping ranges. Ranges
// are re-checked defensively: inverted or out-of-bounds endpoints fail with
// ErrMalformedRange even though the parser should never let them through.
func ExpandHourRanges(ranges []HourRange) ([]Slot, error) {
	var covered [24]bool
	for _, r := range ranges {
		if r.Start < 0 || r.End > 24 || r.Start >= r.End {
			return nil, fmt.Errorf("%w: %s", ErrMalformedRange, r)
		}
		for h := r.Start; h < r.End; h++ {
			covered[h] = true
		}
	}

	slots := make([]Slot, 0, len(ranges))
	for h, ok := range covered {
		if ok {
			slots = append(slots, Slot(h))
		}
	}
	return slots, nil
}

// CanonicalWeekday maps a date to its weekday code independent of any locale.
func CanonicalWeekday(t time.Time) time.Weekday {
	return t.Weekday()
}

// Midnight truncates a time to the start of its calendar day, normalized to
// UTC so dates compare by value regardless of the source location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayKey formats a date as yyyy-MM-dd, the form used to key occupancy cells.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
