package engine

import (
	"sort"
	"time"

	"github.com/example/agenda/internal/booking"
	"github.com/example/agenda/internal/calendar"
)

// OccupancyMap is the room -> date -> hour-slot -> activity structure
// consumed by calendar rendering. It is built once per run and immutable
// thereafter; all iteration helpers return stable orderings.
type OccupancyMap struct {
	rooms map[string]map[string]map[calendar.Slot]string
}

// Project flattens committed cells into an occupancy map. It performs no
// validation and cannot fail.
func Project(cells map[booking.Cell]string) *OccupancyMap {
	m := &OccupancyMap{rooms: make(map[string]map[string]map[calendar.Slot]string)}
	for cell, activity := range cells {
		dates, ok := m.rooms[cell.Room]
		if !ok {
			dates = make(map[string]map[calendar.Slot]string)
			m.rooms[cell.Room] = dates
		}
		slots, ok := dates[cell.Date]
		if !ok {
			slots = make(map[calendar.Slot]string)
			dates[cell.Date] = slots
		}
		slots[cell.Slot] = activity
	}
	return m
}

// ProjectMonth is Project restricted to cells falling inside the given
// month. Reservations spanning adjacent months keep only their in-month
// cells in the rendered grid; conflict resolution has already seen the full
// range.
func ProjectMonth(cells map[booking.Cell]string, year int, month time.Month) *OccupancyMap {
	prefix := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
	filtered := make(map[booking.Cell]string, len(cells))
	for cell, activity := range cells {
		if len(cell.Date) >= len(prefix) && cell.Date[:len(prefix)] == prefix {
			filtered[cell] = activity
		}
	}
	return Project(filtered)
}

// Rooms returns every occupied room, ordered by name.
func (m *OccupancyMap) Rooms() []string {
	rooms := make([]string, 0, len(m.rooms))
	for room := range m.rooms {
		rooms = append(rooms, room)
	}
	sort.Strings(rooms)
	return rooms
}

// Dates returns every occupied date for a room in chronological order. Dates
// are yyyy-MM-dd keys, so lexical order is chronological order.
func (m *OccupancyMap) Dates(room string) []string {
	dates := make([]string, 0, len(m.rooms[room]))
	for date := range m.rooms[room] {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// Slots returns every occupied hour slot for a room and date, ordered by
// start hour.
func (m *OccupancyMap) Slots(room, date string) []calendar.Slot {
	slots := make([]calendar.Slot, 0, len(m.rooms[room][date]))
	for slot := range m.rooms[room][date] {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	return slots
}

// Activity returns the label occupying the given cell, if any.
func (m *OccupancyMap) Activity(room, date string, slot calendar.Slot) (string, bool) {
	activity, ok := m.rooms[room][date][slot]
	return activity, ok
}

// CellCount returns the total number of occupied cells.
func (m *OccupancyMap) CellCount() int {
	total := 0
	for _, dates := range m.rooms {
		for _, slots := range dates {
			total += len(slots)
		}
	}
	return total
}
