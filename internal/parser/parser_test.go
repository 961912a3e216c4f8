package parser

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/example/agenda/internal/booking"
	"github.com/example/agenda/internal/calendar"
	"github.com/example/agenda/internal/i18n"
)

func mustTranslator(t *testing.T, locale string) WeekdayTranslator {
	t.Helper()
	tr, err := i18n.Load(locale)
	if err != nil {
		t.Fatalf("load locale %s: %v", locale, err)
	}
	return tr
}

func TestParser_ParseLine(t *testing.T) {
	t.Parallel()

	t.Run("valid line round-trips its structural fields", func(t *testing.T) {
		t.Parallel()

		p := New(mustTranslator(t, "CAT"))
		r, incidents := p.ParseLine(1, "Yoga RoomA 01/05/2024 31/05/2024 Mon 08-10_14-16")
		if len(incidents) != 0 {
			t.Fatalf("unexpected incidents: %v", incidents)
		}

		if r.Activity != "Yoga" || r.Room != "RoomA" {
			t.Fatalf("unexpected activity/room: %q %q", r.Activity, r.Room)
		}
		if got := r.StartDate.Format(DateLayout); got != "01/05/2024" {
			t.Fatalf("unexpected start date: %s", got)
		}
		if got := r.EndDate.Format(DateLayout); got != "31/05/2024" {
			t.Fatalf("unexpected end date: %s", got)
		}
		if len(r.Weekdays) != 1 || r.Weekdays[0] != time.Monday {
			t.Fatalf("unexpected weekdays: %v", r.Weekdays)
		}
		want := []calendar.HourRange{{Start: 8, End: 10}, {Start: 14, End: 16}}
		if len(r.Hours) != 2 || r.Hours[0] != want[0] || r.Hours[1] != want[1] {
			t.Fatalf("unexpected hours: %v", r.Hours)
		}
	})

	t.Run("localized mask translates through the table", func(t *testing.T) {
		t.Parallel()

		p := New(mustTranslator(t, "CAT"))
		r, incidents := p.ParseLine(1, "Tancat RoomA 01/05/2024 05/05/2024 LMCJV 08-20")
		if len(incidents) != 0 {
			t.Fatalf("unexpected incidents: %v", incidents)
		}
		want := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
		if len(r.Weekdays) != len(want) {
			t.Fatalf("expected weekdays %v, got %v", want, r.Weekdays)
		}
		for i := range want {
			if r.Weekdays[i] != want[i] {
				t.Fatalf("expected weekdays %v, got %v", want, r.Weekdays)
			}
		}
	})

	t.Run("English mask splits every three characters", func(t *testing.T) {
		t.Parallel()

		p := New(mustTranslator(t, "ENG"))
		r, incidents := p.ParseLine(1, "Gym Hall1 06/05/2024 12/05/2024 MONWEDFRI 18-20")
		if len(incidents) != 0 {
			t.Fatalf("unexpected incidents: %v", incidents)
		}
		want := []time.Weekday{time.Monday, time.Wednesday, time.Friday}
		if len(r.Weekdays) != 3 || r.Weekdays[0] != want[0] || r.Weekdays[1] != want[1] || r.Weekdays[2] != want[2] {
			t.Fatalf("expected %v, got %v", want, r.Weekdays)
		}
	})

	t.Run("wrong field count reports the actual count", func(t *testing.T) {
		t.Parallel()

		p := New(nil)
		_, incidents := p.ParseLine(4, "Yoga RoomA 01/05/2024 Mon 08-10")
		if len(incidents) != 1 {
			t.Fatalf("expected one incident, got %v", incidents)
		}
		var fieldErr *booking.FieldCountError
		if !errors.As(incidents[0].Err, &fieldErr) {
			t.Fatalf("expected FieldCountError, got %v", incidents[0].Err)
		}
		if fieldErr.Count != 5 {
			t.Fatalf("expected count 5, got %d", fieldErr.Count)
		}
		if incidents[0].Line != 4 {
			t.Fatalf("expected line 4, got %d", incidents[0].Line)
		}
	})

	t.Run("impossible calendar date is a date format incident", func(t *testing.T) {
		t.Parallel()

		p := New(nil)
		_, incidents := p.ParseLine(1, "Yoga RoomA 31/02/2024 01/05/2024 Mon 08-10")
		if len(incidents) != 1 {
			t.Fatalf("expected one incident, got %v", incidents)
		}
		var dateErr *booking.DateFormatError
		if !errors.As(incidents[0].Err, &dateErr) {
			t.Fatalf("expected DateFormatError, got %v", incidents[0].Err)
		}
		if dateErr.Field != "start date" || dateErr.Value != "31/02/2024" {
			t.Fatalf("unexpected error context: %+v", dateErr)
		}
	})

	t.Run("inverted dates are a date order incident", func(t *testing.T) {
		t.Parallel()

		p := New(nil)
		_, incidents := p.ParseLine(1, "Yoga RoomA 10/05/2024 01/05/2024 Mon 08-10")
		if len(incidents) != 1 {
			t.Fatalf("expected one incident, got %v", incidents)
		}
		var orderErr *booking.DateOrderError
		if !errors.As(incidents[0].Err, &orderErr) {
			t.Fatalf("expected DateOrderError, got %v", incidents[0].Err)
		}
	})

	t.Run("unknown weekday tokens name each offender", func(t *testing.T) {
		t.Parallel()

		p := New(mustTranslator(t, "CAT"))
		_, incidents := p.ParseLine(1, "Yoga RoomA 01/05/2024 02/05/2024 LZQ 08-10")
		if len(incidents) != 2 {
			t.Fatalf("expected incidents for Z and Q, got %v", incidents)
		}
		for _, incident := range incidents {
			var unknownErr *booking.UnknownWeekdayError
			if !errors.As(incident.Err, &unknownErr) {
				t.Fatalf("expected UnknownWeekdayError, got %v", incident.Err)
			}
		}
	})

	t.Run("all hour sub-ranges are validated even after a failure", func(t *testing.T) {
		t.Parallel()

		p := New(nil)
		_, incidents := p.ParseLine(7, "Yoga RoomA 01/05/2024 02/05/2024 Mon 10-08_25-26_12-14_xx-15")
		if len(incidents) != 3 {
			t.Fatalf("expected three hour incidents, got %d: %v", len(incidents), incidents)
		}
		subRanges := make([]string, 0, len(incidents))
		for _, incident := range incidents {
			var hourErr *booking.HourRangeError
			if !errors.As(incident.Err, &hourErr) {
				t.Fatalf("expected HourRangeError, got %v", incident.Err)
			}
			subRanges = append(subRanges, hourErr.SubRange)
		}
		want := []string{"10-08", "25-26", "xx-15"}
		for i := range want {
			if subRanges[i] != want[i] {
				t.Fatalf("expected offending sub-ranges %v, got %v", want, subRanges)
			}
		}
	})

	t.Run("more than five sub-ranges is rejected", func(t *testing.T) {
		t.Parallel()

		p := New(nil)
		_, incidents := p.ParseLine(1, "Yoga RoomA 01/05/2024 02/05/2024 Mon 01-02_03-04_05-06_07-08_09-10_11-12")
		if len(incidents) != 1 {
			t.Fatalf("expected one incident, got %v", incidents)
		}
		var hourErr *booking.HourRangeError
		if !errors.As(incidents[0].Err, &hourErr) {
			t.Fatalf("expected HourRangeError, got %v", incidents[0].Err)
		}
	})
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("skips comments and blanks, isolates bad lines", func(t *testing.T) {
		t.Parallel()

		input := strings.Join([]string{
			"# reservations for May",
			"",
			"Yoga RoomA 01/05/2024 01/05/2024 Wed 08-09",
			"Broken RoomA 31/02/2024 01/05/2024 Wed 08-09",
			"Pilates RoomB 02/05/2024 02/05/2024 Thu 09-10",
		}, "\n")

		p := New(mustTranslator(t, "ENG"))
		reservations, incidents, err := p.Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Parse returned error: %v", err)
		}
		if len(reservations) != 2 {
			t.Fatalf("expected 2 reservations, got %d", len(reservations))
		}
		if len(incidents) != 1 {
			t.Fatalf("expected 1 incident, got %d", len(incidents))
		}
		if incidents[0].Line != 4 {
			t.Fatalf("incident should reference line 4, got %d", incidents[0].Line)
		}
		if reservations[0].Line != 3 || reservations[1].Line != 5 {
			t.Fatalf("reservations should carry their source lines, got %d and %d",
				reservations[0].Line, reservations[1].Line)
		}
	})

	t.Run("empty input yields nothing", func(t *testing.T) {
		t.Parallel()

		p := New(nil)
		reservations, incidents, err := p.Parse(strings.NewReader(""))
		if err != nil {
			t.Fatalf("Parse returned error: %v", err)
		}
		if len(reservations) != 0 || len(incidents) != 0 {
			t.Fatalf("expected empty result, got %v / %v", reservations, incidents)
		}
	})
}
