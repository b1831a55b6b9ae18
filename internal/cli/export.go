package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/schoolstats/internal/datafile"
	"github.com/roach88/schoolstats/internal/store"
	"github.com/roach88/schoolstats/internal/workbook"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Output string
}

// ExportResult describes a written snapshot.
type ExportResult struct {
	Source string `json:"source"`
	Output string `json:"output"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the enrollment table to a SQLite snapshot or workbook",
		Long: `Write the active enrollment table to a SQLite database, or to an
Excel workbook when the output path ends in .xlsx.

A SQLite snapshot replaces anything already stored in the file and can be
read back with --db. A workbook can be read back with --data.

Example:
  schoolstats export -o ./snapshot.db
  schoolstats export -o ./enrollment.xlsx
  schoolstats export --data ./enrollment.cue -o ./snapshot.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "path to SQLite database or .xlsx workbook (required)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	configureLogging(opts.RootOptions, cmd.ErrOrStderr())
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	tbl, source, err := loadTable(ctx, opts.RootOptions)
	if err != nil {
		_ = formatter.Error(errorCode(err), "failed to load table", err.Error())
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to load table from %s", source), err)
	}

	if isWorkbook(opts.Output) {
		slog.Info("writing workbook", "path", opts.Output)
		err = workbook.Write(tbl, opts.Output)
	} else {
		err = saveSnapshot(ctx, tbl, opts.Output)
	}
	if err != nil {
		_ = formatter.Error(ErrCodeWriteFailed, "failed to export table", err.Error())
		return WrapExitError(ExitCommandError, "failed to export table", err)
	}

	result := ExportResult{Source: source, Output: opts.Output}
	if opts.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %s to %s\n", source, opts.Output)
	return nil
}

func saveSnapshot(ctx context.Context, tbl *datafile.Table, path string) error {
	slog.Info("opening database", "path", path)
	st, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	return st.SaveTable(ctx, tbl)
}
