package booking

import (
	"fmt"
	"time"

	"github.com/example/agenda/internal/calendar"
)

// FieldCountError reports a request line that did not split into the six
// expected fields.
type FieldCountError struct {
	Count int
}

func (e *FieldCountError) Error() string {
	return fmt.Sprintf("expected 6 fields, got %d", e.Count)
}

// DateFormatError reports a date field that could not be parsed as
// dd/MM/yyyy or names an impossible calendar date.
type DateFormatError struct {
	Field string
	Value string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("invalid %s %q: expected dd/MM/yyyy", e.Field, e.Value)
}

// DateOrderError reports a start date later than its end date.
type DateOrderError struct {
	Start time.Time
	End   time.Time
}

func (e *DateOrderError) Error() string {
	return fmt.Sprintf("start date %s is after end date %s",
		e.Start.Format("02/01/2006"), e.End.Format("02/01/2006"))
}

// UnknownWeekdayError reports a weekday-mask token with no entry in the
// locale's translation table.
type UnknownWeekdayError struct {
	Token  string
	Locale string
}

func (e *UnknownWeekdayError) Error() string {
	if e.Locale == "" {
		return fmt.Sprintf("unknown weekday token %q", e.Token)
	}
	return fmt.Sprintf("unknown weekday token %q for locale %s", e.Token, e.Locale)
}

// HourRangeError reports one malformed sub-range of an hour mask.
type HourRangeError struct {
	SubRange string
	Reason   string
}

func (e *HourRangeError) Error() string {
	return fmt.Sprintf("invalid hour range %q: %s", e.SubRange, e.Reason)
}

// ConflictError reports a reservation rejected because one of its cells was
// already occupied. It names the first colliding cell encountered.
type ConflictError struct {
	Activity   string
	Room       string
	Date       string
	Slot       calendar.Slot
	OccupiedBy string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%q in room %q overlaps %q on %s %s",
		e.Activity, e.Room, e.OccupiedBy, e.Date, e.Slot.Label())
}

// ValidationError accumulates field-level issues found by the defensive
// validator. A nil or empty value means the reservation passed.
type ValidationError struct {
	FieldErrors map[string]string
}

func (v *ValidationError) Error() string {
	if v == nil || len(v.FieldErrors) == 0 {
		return "validation failed"
	}
	msg := "validation failed:"
	for _, field := range []string{"dates", "weekdays", "hours"} {
		if detail, ok := v.FieldErrors[field]; ok {
			msg += " " + field + ": " + detail + ";"
		}
	}
	return msg
}

// HasErrors reports whether any field-level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
