package booking

import "fmt"

// Category labels the pipeline stage that produced an incident.
type Category string

const (
	// CategoryParse marks incidents raised while parsing a request line.
	CategoryParse Category = "parse"
	// CategoryValidation marks incidents raised by the defensive validator.
	CategoryValidation Category = "validation"
	// CategoryConflict marks reservations rejected by conflict resolution.
	CategoryConflict Category = "conflict"
)

// Incident is a structured, non-fatal error record. Incidents accumulate and
// are returned with the run result; they never abort the batch.
type Incident struct {
	Category Category
	// Line is the 1-based source line, or 0 when the incident refers to an
	// already-constructed reservation rather than raw input.
	Line int
	// Raw is the offending line text, when known.
	Raw string
	// Activity identifies the reservation for validation and conflict
	// incidents.
	Activity string
	Err      error
}

// Message renders the incident for end users without requiring the caller to
// re-derive any context.
func (i Incident) Message() string {
	switch {
	case i.Line > 0 && i.Err != nil:
		return fmt.Sprintf("line %d: %v", i.Line, i.Err)
	case i.Activity != "" && i.Err != nil:
		return fmt.Sprintf("reservation %q: %v", i.Activity, i.Err)
	case i.Err != nil:
		return i.Err.Error()
	default:
		return string(i.Category) + " incident"
	}
}

// ParseIncident builds a parse-category incident for a source line.
func ParseIncident(line int, raw string, err error) Incident {
	return Incident{Category: CategoryParse, Line: line, Raw: raw, Err: err}
}

// ValidationIncident builds a validation-category incident for a reservation
// demoted by the defensive validator.
func ValidationIncident(r Reservation, err error) Incident {
	return Incident{Category: CategoryValidation, Line: r.Line, Activity: r.Activity, Err: err}
}

// ConflictIncident builds a conflict-category incident for a rejected
// reservation.
func ConflictIncident(r Reservation, err error) Incident {
	return Incident{Category: CategoryConflict, Line: r.Line, Activity: r.Activity, Err: err}
}
