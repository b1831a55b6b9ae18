package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/schoolstats/internal/datafile"
	"github.com/roach88/schoolstats/internal/dataset"
)

// ValidateResult summarizes a valid table.
type ValidateResult struct {
	Source    string `json:"source"`
	Shape     [3]int `json:"shape"`
	Schools   int    `json:"schools"`
	FirstYear int    `json:"first_year"`
	Missing   int    `json:"missing_cells"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [table.cue]",
		Short: "Validate an enrollment table",
		Long: `Load an enrollment table and check it against the table schema.

With no argument the table chosen by --data, --db or the embedded table
is checked.

Example:
  schoolstats validate ./enrollment.cue
  schoolstats validate --db ./snapshot.db --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := *rootOpts
			if len(args) == 1 {
				opts.Data, opts.DB = args[0], ""
			}
			return runValidate(&opts, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, cmd *cobra.Command) error {
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

	tbl, source, err := loadTable(ctx, opts)
	if err != nil {
		code := errorCode(err)
		_ = formatter.Error(code, "Validation failed", err.Error())
		return NewExitError(ExitCommandError, fmt.Sprintf("%s: validation failed: %v", code, err))
	}

	result := ValidateResult{
		Source:    source,
		Shape:     tbl.Cube.Shape(),
		Schools:   tbl.Directory.Len(),
		FirstYear: tbl.FirstYear,
		Missing:   countMissing(tbl),
	}
	formatter.VerboseLog("validated %s", source)

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Table valid: %s\n", source)
	fmt.Fprintf(cmd.OutOrStdout(), "  shape %v, %d schools, %d-%d, %d missing cells\n",
		result.Shape, result.Schools, result.FirstYear, result.FirstYear+result.Shape[0]-1, result.Missing)
	return nil
}

func countMissing(tbl *datafile.Table) int {
	n := 0
	for y := 0; y < tbl.Cube.Shape()[0]; y++ {
		for _, v := range tbl.Cube.Flat(y) {
			if dataset.IsMissing(v) {
				n++
			}
		}
	}
	return n
}
