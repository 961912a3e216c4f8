// Package booking defines the reservation domain model shared by the parser,
// the validator, and the conflict resolution engine.
package booking

import (
	"time"

	"github.com/example/agenda/internal/calendar"
)

// Reservation is a validated booking request. Invalid input never reaches
// this type; the parser reports an Incident and drops the line instead.
type Reservation struct {
	ID        string
	Line      int
	Activity  string
	Room      string
	StartDate time.Time
	EndDate   time.Time
	Weekdays  []time.Weekday
	Hours     []calendar.HourRange
}

// IsClosed reports whether the reservation is a closed booking, an
// authoritative blackout that always wins cell conflicts.
func (r Reservation) IsClosed(sentinel string) bool {
	return sentinel != "" && r.Activity == sentinel
}

// RecursOn reports whether the reservation's weekday mask includes the day.
func (r Reservation) RecursOn(day time.Weekday) bool {
	for _, d := range r.Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// Cell is the resolution unit: one room for one hour slot on one date. The
// date is keyed as yyyy-MM-dd so cells compare by value.
type Cell struct {
	Room string
	Date string
	Slot calendar.Slot
}

// Cells expands the reservation into every cell it would occupy: each date in
// its range whose weekday is in the mask, times each unit hour slot. A mask
// that matches no date in the range yields no cells, which is not an error.
func (r Reservation) Cells() ([]Cell, error) {
	slots, err := calendar.ExpandHourRanges(r.Hours)
	if err != nil {
		return nil, err
	}

	var cells []Cell
	for day := range calendar.DatesInRange(r.StartDate, r.EndDate) {
		if !r.RecursOn(calendar.CanonicalWeekday(day)) {
			continue
		}
		key := calendar.DayKey(day)
		for _, slot := range slots {
			cells = append(cells, Cell{Room: r.Room, Date: key, Slot: slot})
		}
	}
	return cells, nil
}
