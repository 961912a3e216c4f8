package booking

import "time"

// MaxHourRanges bounds the number of hour ranges a single reservation may
// carry.
const MaxHourRanges = 5

// Validate re-checks the shape of an already-constructed reservation. It is
// independent of the parser so reservations arriving from any source get the
// same scrutiny before conflict resolution. A non-nil result demotes the
// reservation to an incident.
func Validate(r Reservation) *ValidationError {
	vErr := &ValidationError{}

	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		vErr.add("dates", "start and end dates are required")
	} else if r.StartDate.After(r.EndDate) {
		vErr.add("dates", "start date is after end date")
	}

	if len(r.Weekdays) == 0 {
		vErr.add("weekdays", "at least one weekday is required")
	} else {
		for _, day := range r.Weekdays {
			if day < time.Sunday || day > time.Saturday {
				vErr.add("weekdays", "weekday outside the canonical alphabet")
				break
			}
		}
	}

	if len(r.Hours) == 0 {
		vErr.add("hours", "at least one hour range is required")
	} else if len(r.Hours) > MaxHourRanges {
		vErr.add("hours", "more than 5 hour ranges")
	} else {
		for _, rng := range r.Hours {
			if rng.Start < 0 || rng.End > 24 || rng.Start >= rng.End {
				vErr.add("hours", "hour range "+rng.String()+" violates 0 <= start < end <= 24")
				break
			}
		}
	}

	if vErr.HasErrors() {
		return vErr
	}
	return nil
}
