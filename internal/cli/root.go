package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Data    string // CUE table path; empty means the embedded table
	DB      string // SQLite snapshot path
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the schoolstats CLI.
// Run without a subcommand it behaves like "schoolstats report".
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	reportOpts := &ReportOptions{RootOptions: opts}

	cmd := &cobra.Command{
		Use:   "schoolstats",
		Short: "School enrollment statistics",
		Long: `Report enrollment statistics for Calgary public high schools.

Prompts for a school name or school code, then prints that school's
statistics across ten years followed by statistics for all schools.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.Data != "" && opts.DB != "" {
				return fmt.Errorf("--data and --db cannot be used together")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(reportOpts, cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Data, "data", "", "enrollment table CUE file (default: embedded table)")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "read the enrollment table from a SQLite snapshot")

	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// configureLogging installs a text slog handler on w. The terminal stays
// quiet unless --verbose is set.
func configureLogging(opts *RootOptions, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
