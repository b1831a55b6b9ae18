// Package session runs one terminal report: header, school prompt, the
// requested school's statistics and the all-schools statistics, in that order.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/schoolstats/internal/datafile"
	"github.com/roach88/schoolstats/internal/prompt"
	"github.com/roach88/schoolstats/internal/report"
)

// IDGenerator produces session ids for log correlation.
type IDGenerator interface {
	Generate() string
}

// Config wires a session to its data and terminal.
type Config struct {
	Table *datafile.Table
	In    io.Reader
	Out   io.Writer

	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// IDs defaults to UUIDv7Generator.
	IDs IDGenerator
}

// Outcome is everything a session computed.
type Outcome struct {
	ID         string                 `json:"session_id"`
	Resolution prompt.Resolution      `json:"-"`
	School     report.SchoolReport    `json:"school_report"`
	Aggregate  report.AggregateReport `json:"aggregate_report"`
}

// Compute resolves a school from cfg.In and computes both reports without
// printing them. Prompts still go to cfg.Out.
func Compute(ctx context.Context, cfg Config) (Outcome, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ids := cfg.IDs
	if ids == nil {
		ids = UUIDv7Generator{}
	}

	out := Outcome{ID: ids.Generate()}
	logger = logger.With("session", out.ID)

	resolver := &prompt.Resolver{In: cfg.In, Out: cfg.Out, Dir: cfg.Table.Directory, Logger: logger}
	res, err := resolver.Resolve(ctx)
	if err != nil {
		return out, err
	}
	out.Resolution = res

	reporter := report.NewReporter(cfg.Table.Cube, cfg.Table.Directory, cfg.Table.FirstYear)
	out.School, err = reporter.School(res.Index)
	if err != nil {
		return out, err
	}
	out.Aggregate = reporter.Aggregate()

	logger.Info("report computed",
		"school", res.Code,
		"attempts", res.Attempts,
		"invalid", res.Invalid,
	)
	return out, nil
}

// Run prints the header, resolves a school and prints both report sections.
func Run(ctx context.Context, cfg Config) (Outcome, error) {
	if err := report.RenderHeader(cfg.Out, cfg.Table.Cube); err != nil {
		return Outcome{}, fmt.Errorf("write header: %w", err)
	}

	out, err := Compute(ctx, cfg)
	if err != nil {
		return out, err
	}

	if err := report.RenderSchool(cfg.Out, out.School); err != nil {
		return out, fmt.Errorf("write school report: %w", err)
	}
	if err := report.RenderAggregate(cfg.Out, out.Aggregate); err != nil {
		return out, fmt.Errorf("write aggregate report: %w", err)
	}
	return out, nil
}
