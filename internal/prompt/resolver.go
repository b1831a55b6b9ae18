// Package prompt asks the user for a school until the answer names a known
// school or school code.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/schoolstats/internal/directory"
)

// Fixed terminal text.
const (
	PromptText   = "Please enter the high school name or school code: "
	InvalidInput = "\nYou must enter a valid school name or code.\n\n"
)

// ErrInputClosed is returned when input ends before a school is matched.
var ErrInputClosed = errors.New("prompt: input closed before a school was selected")

// State is a step of the resolve loop.
type State int

const (
	AwaitingInput State = iota
	Invalid
	Matched
)

func (s State) String() string {
	switch s {
	case AwaitingInput:
		return "awaiting_input"
	case Invalid:
		return "invalid"
	case Matched:
		return "matched"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Resolution is the outcome of a completed resolve loop.
type Resolution struct {
	directory.Entry
	Attempts int // lines read, including the matching one
	Invalid  int // lines rejected before the match
}

// Resolver reads lines from In and writes prompts to Out.
type Resolver struct {
	In  io.Reader
	Out io.Writer
	Dir *directory.Directory

	// Logger receives one debug record per rejected line. Defaults to slog.Default().
	Logger *slog.Logger
}

// Resolve loops AwaitingInput -> Invalid -> AwaitingInput until a line
// exactly matches a school name or code. Only the line terminator is
// stripped from each line.
func (r *Resolver) Resolve(ctx context.Context) (Resolution, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reader := bufio.NewReader(r.In)

	var res Resolution
	state := AwaitingInput
	for state != Matched {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		switch state {
		case AwaitingInput:
			if _, err := io.WriteString(r.Out, PromptText); err != nil {
				return res, fmt.Errorf("prompt: write: %w", err)
			}
			line, readErr := reader.ReadString('\n')
			if readErr != nil && (readErr != io.EOF || line == "") {
				if readErr == io.EOF {
					return res, ErrInputClosed
				}
				return res, fmt.Errorf("prompt: read: %w", readErr)
			}
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			res.Attempts++

			entry, ok := r.Dir.Resolve(line)
			if !ok {
				logger.Debug("school not recognised", "input", line, "attempt", res.Attempts)
				state = Invalid
				continue
			}
			res.Entry = entry
			state = Matched

		case Invalid:
			res.Invalid++
			if _, err := io.WriteString(r.Out, InvalidInput); err != nil {
				return res, fmt.Errorf("prompt: write: %w", err)
			}
			state = AwaitingInput
		}
	}

	logger.Debug("school resolved", "index", res.Index, "code", res.Code, "attempts", res.Attempts)
	return res, nil
}
