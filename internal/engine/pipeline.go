package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/example/agenda/internal/booking"
	"github.com/example/agenda/internal/logging"
	"github.com/example/agenda/internal/parser"
)

// Pipeline runs one full batch: parse request lines, re-validate the
// candidates, resolve conflicts, and project the occupancy map. It holds no
// working state between runs; every call returns a fresh result.
type Pipeline struct {
	translator  parser.WeekdayTranslator
	sentinel    string
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewPipeline wires a pipeline for the given locale translator and closed
// sentinel. A nil idGenerator defaults to UUIDs and a nil now defaults to
// time.Now.
func NewPipeline(translator parser.WeekdayTranslator, sentinel string, idGenerator func() string, now func() time.Time) *Pipeline {
	return NewPipelineWithLogger(translator, sentinel, idGenerator, now, nil)
}

// NewPipelineWithLogger is NewPipeline with an explicit base logger.
func NewPipelineWithLogger(translator parser.WeekdayTranslator, sentinel string, idGenerator func() string, now func() time.Time, logger *slog.Logger) *Pipeline {
	if idGenerator == nil {
		idGenerator = uuid.NewString
	}
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		translator:  translator,
		sentinel:    sentinel,
		idGenerator: idGenerator,
		now:         now,
		logger:      logger,
	}
}

// BatchResult is the complete outcome of one run. Incidents are ordered
// parse and validation first, then conflicts.
type BatchResult struct {
	RunID     string
	StartedAt time.Time
	Accepted  []booking.Reservation
	Rejected  []booking.Reservation
	Incidents []booking.Incident
	Occupancy *OccupancyMap
	Cells     map[booking.Cell]string
}

// ProcessBatch ingests one batch of request lines and returns the full
// result. No failure inside a line or reservation escapes its boundary; the
// only error returned is an unreadable input source.
func (p *Pipeline) ProcessBatch(ctx context.Context, requests io.Reader) (BatchResult, error) {
	if p == nil {
		return BatchResult{}, fmt.Errorf("engine: pipeline is nil")
	}

	runID := p.idGenerator()
	logger := p.runLogger(ctx, runID)

	result := BatchResult{RunID: runID, StartedAt: p.now()}

	lineParser := parser.New(p.translator)
	candidates, parseIncidents, err := lineParser.Parse(requests)
	if err != nil {
		return BatchResult{}, err
	}
	logger.InfoContext(ctx, "request lines parsed",
		"candidates", len(candidates), "parse_incidents", len(parseIncidents))

	result.Incidents = append(result.Incidents, parseIncidents...)

	// Defensive re-validation, independent of the parser.
	valid := make([]booking.Reservation, 0, len(candidates))
	for _, candidate := range candidates {
		if vErr := booking.Validate(candidate); vErr != nil {
			result.Incidents = append(result.Incidents, booking.ValidationIncident(candidate, vErr))
			continue
		}
		candidate.ID = p.idGenerator()
		valid = append(valid, candidate)
	}

	resolution := NewResolver(p.sentinel).Resolve(valid)
	logger.InfoContext(ctx, "conflicts resolved",
		"accepted", len(resolution.Accepted),
		"rejected", len(resolution.Rejected))

	result.Accepted = resolution.Accepted
	result.Rejected = resolution.Rejected
	result.Incidents = append(result.Incidents, resolution.Incidents...)
	result.Cells = resolution.Cells
	result.Occupancy = Project(resolution.Cells)

	logger.InfoContext(ctx, "batch processed",
		"occupied_cells", result.Occupancy.CellCount(),
		"incidents", len(result.Incidents))

	return result, nil
}

func (p *Pipeline) runLogger(ctx context.Context, runID string) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = p.logger
	}
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("run_id", runID)
}
