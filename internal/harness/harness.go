package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/schoolstats/internal/datafile"
	"github.com/roach88/schoolstats/internal/session"
)

// Result contains the outcome of a scenario run.
type Result struct {
	// Pass is true if all assertions held.
	Pass bool

	// Transcript is everything written to the terminal.
	Transcript string

	// Outcome is the computed session.
	Outcome session.Outcome

	// Errors lists failed assertions.
	Errors []string
}

// fixedID keeps scenario sessions deterministic. It stays local because
// testutil imports testify, which the CLI binary must not link.
type fixedID string

func (id fixedID) Generate() string { return string(id) }

// Run executes a scenario. It returns an error only when the session itself
// cannot complete (bad data file, inputs exhausted before a match).
func Run(scenario *Scenario) (*Result, error) {
	tbl, err := loadTable(scenario.Data)
	if err != nil {
		return nil, fmt.Errorf("load data: %w", err)
	}

	var transcript strings.Builder
	input := strings.Join(scenario.Inputs, "\n") + "\n"
	outcome, err := session.Run(context.Background(), session.Config{
		Table:  tbl,
		In:     strings.NewReader(input),
		Out:    &transcript,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		IDs:    fixedID("scenario-" + scenario.Name),
	})
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	result := &Result{
		Transcript: transcript.String(),
		Outcome:    outcome,
	}
	for _, a := range scenario.Assertions {
		if err := evaluate(a, result); err != nil {
			result.Errors = append(result.Errors, err.Error())
		}
	}
	result.Pass = len(result.Errors) == 0
	return result, nil
}

func loadTable(path string) (*datafile.Table, error) {
	if path == "" {
		return datafile.Default()
	}
	return datafile.Load(path)
}
