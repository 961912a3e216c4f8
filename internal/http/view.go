package http

import (
	"time"

	"github.com/example/agenda/internal/engine"
	"github.com/example/agenda/internal/i18n"
)

// AgendaView is the data handed to the calendar template: the localized
// month header, a Monday-first week grid, per-day bookings, and the combined
// incident list.
type AgendaView struct {
	Title          string
	Year           int
	MonthName      string
	WeekdayHeaders []string
	Weeks          [][]DayView
	Incidents      []string
}

// DayView is one cell of the week grid. Days padded in from adjacent months
// carry InMonth false and no bookings.
type DayView struct {
	Day      int
	Date     string
	InMonth  bool
	Bookings []BookingView
}

// BookingView is one occupied hour slot on one day, ordered by room then
// slot start.
type BookingView struct {
	Room     string
	Slot     string
	Activity string
}

// gridWeeks is the fixed number of week rows rendered; six rows cover any
// month layout.
const gridWeeks = 6

// MonthGrid returns the days shown for a month as six Monday-first weeks,
// padded with adjacent-month days.
func MonthGrid(year int, month time.Month) [][]time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// In Go, Monday == 1 and Sunday == 0; shift so the grid starts on Monday.
	offset := (int(first.Weekday()) + 6) % 7
	current := first.AddDate(0, 0, -offset)

	weeks := make([][]time.Time, 0, gridWeeks)
	for range gridWeeks {
		week := make([]time.Time, 0, 7)
		for range 7 {
			week = append(week, current)
			current = current.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// BuildAgendaView assembles the calendar view for one processed batch,
// restricted to the configured month.
func BuildAgendaView(result engine.BatchResult, year int, month time.Month, output *i18n.Translator) AgendaView {
	occupancy := engine.ProjectMonth(result.Cells, year, month)

	view := AgendaView{
		Title:     output.MonthName(month),
		Year:      year,
		MonthName: output.MonthName(month),
	}

	for day := time.Monday; ; day = (day + 1) % 7 {
		view.WeekdayHeaders = append(view.WeekdayHeaders, output.WeekdayName(day))
		if day == time.Sunday {
			break
		}
	}

	for _, week := range MonthGrid(year, month) {
		row := make([]DayView, 0, 7)
		for _, date := range week {
			cell := DayView{
				Day:     date.Day(),
				Date:    date.Format("2006-01-02"),
				InMonth: date.Month() == month && date.Year() == year,
			}
			if cell.InMonth {
				cell.Bookings = bookingsForDate(occupancy, cell.Date)
			}
			row = append(row, cell)
		}
		view.Weeks = append(view.Weeks, row)
	}

	view.Incidents = make([]string, 0, len(result.Incidents))
	for _, incident := range result.Incidents {
		view.Incidents = append(view.Incidents, incident.Message())
	}

	return view
}

func bookingsForDate(occupancy *engine.OccupancyMap, date string) []BookingView {
	var bookings []BookingView
	for _, room := range occupancy.Rooms() {
		for _, slot := range occupancy.Slots(room, date) {
			activity, _ := occupancy.Activity(room, date, slot)
			bookings = append(bookings, BookingView{
				Room:     room,
				Slot:     slot.Label(),
				Activity: activity,
			})
		}
	}
	return bookings
}
