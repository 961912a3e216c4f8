package engine

import (
	"testing"
	"time"

	"github.com/example/agenda/internal/booking"
	"github.com/example/agenda/internal/calendar"
)

func TestProject(t *testing.T) {
	t.Parallel()

	cells := map[booking.Cell]string{
		{Room: "RoomB", Date: "2024-05-02", Slot: 9}:  "Pilates",
		{Room: "RoomA", Date: "2024-05-01", Slot: 8}:  "Yoga",
		{Room: "RoomA", Date: "2024-05-01", Slot: 14}: "Yoga",
		{Room: "RoomA", Date: "2024-05-03", Slot: 8}:  "Tancat",
	}

	m := Project(cells)

	t.Run("rooms are ordered by name", func(t *testing.T) {
		t.Parallel()
		rooms := m.Rooms()
		if len(rooms) != 2 || rooms[0] != "RoomA" || rooms[1] != "RoomB" {
			t.Fatalf("unexpected room order: %v", rooms)
		}
	})

	t.Run("dates are ordered chronologically", func(t *testing.T) {
		t.Parallel()
		dates := m.Dates("RoomA")
		if len(dates) != 2 || dates[0] != "2024-05-01" || dates[1] != "2024-05-03" {
			t.Fatalf("unexpected date order: %v", dates)
		}
	})

	t.Run("slots are ordered by start hour", func(t *testing.T) {
		t.Parallel()
		slots := m.Slots("RoomA", "2024-05-01")
		if len(slots) != 2 || slots[0] != 8 || slots[1] != 14 {
			t.Fatalf("unexpected slot order: %v", slots)
		}
	})

	t.Run("activity lookup", func(t *testing.T) {
		t.Parallel()
		activity, ok := m.Activity("RoomA", "2024-05-01", calendar.Slot(8))
		if !ok || activity != "Yoga" {
			t.Fatalf("expected Yoga, got %q (%v)", activity, ok)
		}
		if _, ok := m.Activity("RoomA", "2024-05-01", calendar.Slot(9)); ok {
			t.Fatalf("unoccupied slot must not resolve")
		}
	})

	t.Run("cell count", func(t *testing.T) {
		t.Parallel()
		if got := m.CellCount(); got != 4 {
			t.Fatalf("expected 4 cells, got %d", got)
		}
	})
}

func TestProjectMonth(t *testing.T) {
	t.Parallel()

	cells := map[booking.Cell]string{
		{Room: "RoomA", Date: "2024-04-30", Slot: 8}: "Yoga",
		{Room: "RoomA", Date: "2024-05-01", Slot: 8}: "Yoga",
		{Room: "RoomA", Date: "2024-06-01", Slot: 8}: "Yoga",
	}

	m := ProjectMonth(cells, 2024, time.May)
	if got := m.CellCount(); got != 1 {
		t.Fatalf("expected only the May cell, got %d", got)
	}
	if _, ok := m.Activity("RoomA", "2024-05-01", calendar.Slot(8)); !ok {
		t.Fatalf("May cell missing from projection")
	}
}
