// Package engine resolves scheduling conflicts between reservations and
// projects the accepted set into the occupancy map consumed by rendering.
package engine

import (
	"github.com/example/agenda/internal/booking"
	"github.com/example/agenda/internal/i18n"
)

// Resolver assigns each candidate reservation an outcome by expanding it
// into occupied cells and detecting collisions against already-committed
// cells. Closed reservations form a priority class that always wins.
type Resolver struct {
	sentinel string
}

// NewResolver returns a Resolver using the given closed-activity sentinel.
// An empty sentinel falls back to the fixed default literal.
func NewResolver(sentinel string) *Resolver {
	if sentinel == "" {
		sentinel = i18n.DefaultClosedSentinel
	}
	return &Resolver{sentinel: sentinel}
}

// Resolution is the outcome of one conflict-resolution pass. Cells maps
// every committed cell to the activity label occupying it.
type Resolution struct {
	Accepted  []booking.Reservation
	Rejected  []booking.Reservation
	Incidents []booking.Incident
	Cells     map[booking.Cell]string
}

// Resolve partitions candidates into closed and normal classes, commits all
// closed reservations first (unconditionally, overwriting any prior mark),
// then processes normal reservations in input order with all-or-nothing
// acceptance: a collision on a single cell rejects the whole reservation.
//
// Resolve holds no state between calls; resolving the same candidate list
// twice yields identical partitions and cell maps.
func (r *Resolver) Resolve(candidates []booking.Reservation) Resolution {
	result := Resolution{Cells: make(map[booking.Cell]string)}

	var normal []booking.Reservation
	for _, candidate := range candidates {
		if candidate.IsClosed(r.sentinel) {
			r.commitClosed(candidate, &result)
			continue
		}
		normal = append(normal, candidate)
	}

	for _, candidate := range normal {
		r.tryCommit(candidate, &result)
	}

	return result
}

func (r *Resolver) commitClosed(candidate booking.Reservation, result *Resolution) {
	cells, err := candidate.Cells()
	if err != nil {
		result.Rejected = append(result.Rejected, candidate)
		result.Incidents = append(result.Incidents, booking.ValidationIncident(candidate, err))
		return
	}

	for _, cell := range cells {
		result.Cells[cell] = candidate.Activity
	}
	result.Accepted = append(result.Accepted, candidate)
}

func (r *Resolver) tryCommit(candidate booking.Reservation, result *Resolution) {
	cells, err := candidate.Cells()
	if err != nil {
		result.Rejected = append(result.Rejected, candidate)
		result.Incidents = append(result.Incidents, booking.ValidationIncident(candidate, err))
		return
	}

	for _, cell := range cells {
		occupant, taken := result.Cells[cell]
		if !taken {
			continue
		}
		result.Rejected = append(result.Rejected, candidate)
		result.Incidents = append(result.Incidents, booking.ConflictIncident(candidate, &booking.ConflictError{
			Activity:   candidate.Activity,
			Room:       candidate.Room,
			Date:       cell.Date,
			Slot:       cell.Slot,
			OccupiedBy: occupant,
		}))
		return
	}

	for _, cell := range cells {
		result.Cells[cell] = candidate.Activity
	}
	result.Accepted = append(result.Accepted, candidate)
}
