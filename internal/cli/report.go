package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/schoolstats/internal/prompt"
	"github.com/roach88/schoolstats/internal/session"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions

	// School is typed at the prompt before anything is read from stdin.
	School string

	// IDs allows overriding the session id generator (for testing).
	// If nil, defaults to session.UUIDv7Generator.
	IDs session.IDGenerator
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Prompt for a school and print its statistics",
		Long: `Prompt for a school name or school code and print enrollment statistics.

The prompt repeats until the answer exactly matches a known school name
or school code. The school's statistics are followed by statistics for
all schools.

Example:
  schoolstats report
  schoolstats report --school 9836
  schoolstats report --db ./snapshot.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.School, "school", "", "school name or code to answer the first prompt with")

	return cmd
}

func runReport(opts *ReportOptions, cmd *cobra.Command) error {
	logger := configureLogging(opts.RootOptions, cmd.ErrOrStderr())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	tbl, source, err := loadTable(ctx, opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to load table from %s", source), err)
	}

	var in io.Reader = cmd.InOrStdin()
	if opts.School != "" {
		in = io.MultiReader(strings.NewReader(opts.School+"\n"), in)
	}

	cfg := session.Config{
		Table:  tbl,
		In:     in,
		Out:    cmd.OutOrStdout(),
		Logger: logger,
		IDs:    opts.IDs,
	}

	if opts.Format == "json" {
		// Prompts go to stderr so stdout stays a single JSON document.
		cfg.Out = cmd.ErrOrStderr()
		out, err := session.Compute(ctx, cfg)
		if err != nil {
			return reportError(err)
		}
		formatter := &OutputFormatter{Format: "json", Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose}
		return formatter.SuccessWithTrace(out, out.ID)
	}

	if _, err := session.Run(ctx, cfg); err != nil {
		return reportError(err)
	}
	return nil
}

func reportError(err error) error {
	if errors.Is(err, prompt.ErrInputClosed) {
		return WrapExitError(ExitFailure, ErrCodeInput+": no school selected", err)
	}
	return WrapExitError(ExitFailure, "report failed", err)
}
