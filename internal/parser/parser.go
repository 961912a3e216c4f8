// Package parser turns textual reservation request lines into booking
// domain values, isolating every failure to the line that caused it.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/example/agenda/internal/booking"
	"github.com/example/agenda/internal/calendar"
	"github.com/example/agenda/internal/i18n"
)

// DateLayout is the fixed dd/MM/yyyy wire format for reservation dates.
const DateLayout = "02/01/2006"

const fieldCount = 6

// WeekdayTranslator resolves one locale-specific weekday token into its
// canonical weekday code. i18n.Translator satisfies it.
type WeekdayTranslator interface {
	Locale() string
	TokenLength() int
	Weekday(token string) (time.Weekday, error)
}

// Parser converts request lines into reservations. A nil translator accepts
// only the canonical 3-letter weekday alphabet.
type Parser struct {
	translator WeekdayTranslator
}

// New returns a Parser using the given weekday-token translator.
func New(translator WeekdayTranslator) *Parser {
	return &Parser{translator: translator}
}

// Parse reads request lines from r, one reservation per line. Lines that are
// blank or start with # are skipped. Malformed lines produce incidents and
// are dropped; parsing always continues to the next line.
func (p *Parser) Parse(r io.Reader) ([]booking.Reservation, []booking.Incident, error) {
	var (
		reservations []booking.Reservation
		incidents    []booking.Incident
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		reservation, lineIncidents := p.ParseLine(lineNo, line)
		if len(lineIncidents) > 0 {
			incidents = append(incidents, lineIncidents...)
			continue
		}
		reservations = append(reservations, reservation)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("parser: read request lines: %w", err)
	}

	return reservations, incidents, nil
}

// ParseLine parses one request line of the form
//
//	<ActivityName> <Room> <dd/MM/yyyy> <dd/MM/yyyy> <WeekdayMask> <HourMask>
//
// On success it returns the reservation and no incidents. On failure it
// returns every incident the line produced; hour-mask sub-ranges are all
// validated even after the first failure so a single line can report several
// hour errors at once.
func (p *Parser) ParseLine(lineNo int, line string) (booking.Reservation, []booking.Incident) {
	fields := strings.Split(line, " ")
	if len(fields) != fieldCount {
		return booking.Reservation{}, []booking.Incident{
			booking.ParseIncident(lineNo, line, &booking.FieldCountError{Count: len(fields)}),
		}
	}

	var incidents []booking.Incident
	report := func(err error) {
		incidents = append(incidents, booking.ParseIncident(lineNo, line, err))
	}

	startDate, err := parseDate("start date", fields[2])
	if err != nil {
		report(err)
	}
	endDate, err := parseDate("end date", fields[3])
	if err != nil {
		report(err)
	}
	if !startDate.IsZero() && !endDate.IsZero() && startDate.After(endDate) {
		report(&booking.DateOrderError{Start: startDate, End: endDate})
	}

	weekdays, dayErrs := p.parseDayMask(fields[4])
	for _, err := range dayErrs {
		report(err)
	}

	hours, hourErrs := parseHourMask(fields[5])
	for _, err := range hourErrs {
		report(err)
	}

	if len(incidents) > 0 {
		return booking.Reservation{}, incidents
	}

	return booking.Reservation{
		Line:      lineNo,
		Activity:  fields[0],
		Room:      fields[1],
		StartDate: startDate,
		EndDate:   endDate,
		Weekdays:  weekdays,
		Hours:     hours,
	}, nil
}

func parseDate(field, value string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, &booking.DateFormatError{Field: field, Value: value}
	}
	return calendar.Midnight(parsed), nil
}

// parseDayMask resolves a weekday mask. Masks already written in the
// canonical 3-letter alphabet are accepted directly; everything else goes
// through the locale translation table.
func (p *Parser) parseDayMask(mask string) ([]time.Weekday, []error) {
	if days, ok := canonicalMask(mask); ok {
		return days, nil
	}

	if p.translator == nil {
		return nil, []error{&booking.UnknownWeekdayError{Token: mask}}
	}

	width := p.translator.TokenLength()
	if width <= 0 || mask == "" {
		return nil, []error{&booking.UnknownWeekdayError{Token: mask, Locale: p.translator.Locale()}}
	}

	var (
		days []time.Weekday
		errs []error
	)
	for start := 0; start < len(mask); start += width {
		end := min(start+width, len(mask))
		token := mask[start:end]
		day, err := p.translator.Weekday(token)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		days = appendWeekday(days, day)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return days, nil
}

func canonicalMask(mask string) ([]time.Weekday, bool) {
	if mask == "" || len(mask)%3 != 0 {
		return nil, false
	}
	var days []time.Weekday
	for start := 0; start < len(mask); start += 3 {
		day, ok := i18n.CanonicalWeekdays[mask[start:start+3]]
		if !ok {
			return nil, false
		}
		days = appendWeekday(days, day)
	}
	return days, true
}

func appendWeekday(days []time.Weekday, day time.Weekday) []time.Weekday {
	for _, existing := range days {
		if existing == day {
			return days
		}
	}
	return append(days, day)
}

// parseHourMask splits an HH-HH_HH-HH mask into hour ranges. Every sub-range
// is validated even after an earlier one fails.
func parseHourMask(mask string) ([]calendar.HourRange, []error) {
	subRanges := strings.Split(mask, "_")

	var errs []error
	if len(subRanges) > booking.MaxHourRanges {
		errs = append(errs, &booking.HourRangeError{
			SubRange: mask,
			Reason:   fmt.Sprintf("%d ranges given, at most %d allowed", len(subRanges), booking.MaxHourRanges),
		})
	}

	var ranges []calendar.HourRange
	for _, sub := range subRanges {
		rng, err := parseHourRange(sub)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ranges = append(ranges, rng)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return ranges, nil
}

func parseHourRange(sub string) (calendar.HourRange, error) {
	parts := strings.Split(sub, "-")
	if len(parts) != 2 {
		return calendar.HourRange{}, &booking.HourRangeError{SubRange: sub, Reason: "expected HH-HH"}
	}

	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return calendar.HourRange{}, &booking.HourRangeError{SubRange: sub, Reason: "start hour is not a number"}
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return calendar.HourRange{}, &booking.HourRangeError{SubRange: sub, Reason: "end hour is not a number"}
	}
	if start < 0 || end > 24 || start >= end {
		return calendar.HourRange{}, &booking.HourRangeError{
			SubRange: sub,
			Reason:   fmt.Sprintf("bounds must satisfy 0 <= %d < %d <= 24", start, end),
		}
	}

	return calendar.HourRange{Start: start, End: end}, nil
}
