package datafile

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/schoolstats/internal/dataset"
	"github.com/roach88/schoolstats/internal/directory"
)

//go:embed schema.cue
var schemaCUE []byte

//go:embed enrollment.cue
var enrollmentCUE []byte

// DefaultName is the filename reported for the embedded table.
const DefaultName = "enrollment.cue"

// Table is the immutable enrollment data and school directory.
type Table struct {
	FirstYear int
	Names     []string
	Codes     []string
	Cube      *dataset.Cube
	Directory *directory.Directory
}

// LoadError describes a table that failed to load or validate.
type LoadError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// rawTable mirrors #Table for decoding.
type rawTable struct {
	FirstYear int          `json:"first_year"`
	Names     []string     `json:"names"`
	Codes     []string     `json:"codes"`
	Years     [][]*float64 `json:"years"`
}

// Default loads the embedded table.
func Default() (*Table, error) {
	return Parse(DefaultName, enrollmentCUE)
}

// Load reads and parses a table file.
func Load(path string) (*Table, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	return Parse(path, src)
}

// Parse unifies src with the #Table schema and builds the table.
func Parse(filename string, src []byte) (*Table, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	def := schema.LookupPath(cue.ParsePath("#Table"))

	data := ctx.CompileBytes(src, cue.Filename(filename))
	if err := data.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	v := def.Unify(data)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var raw rawTable
	if err := v.Decode(&raw); err != nil {
		return nil, formatCUEError(err)
	}
	return FromRaw(raw.FirstYear, raw.Names, raw.Codes, nullsToMissing(raw.Years))
}

// FromRaw builds a table from already-decoded parts. It is shared by the CUE
// loader and the SQLite snapshot reader.
func FromRaw(firstYear int, names, codes []string, years [][]float64) (*Table, error) {
	for i, name := range names {
		if !norm.NFC.IsNormalString(name) {
			return nil, &LoadError{Field: "names", Message: fmt.Sprintf("name %d (%q) is not NFC-normalized", i, name)}
		}
	}
	if len(names) != dataset.Schools {
		return nil, &LoadError{Field: "names", Message: fmt.Sprintf("expected %d schools, got %d", dataset.Schools, len(names))}
	}

	dir, err := directory.New(names, codes)
	if err != nil {
		return nil, &LoadError{Field: "codes", Message: err.Error()}
	}
	cube, err := dataset.Build(years)
	if err != nil {
		return nil, err
	}

	return &Table{
		FirstYear: firstYear,
		Names:     append([]string(nil), names...),
		Codes:     append([]string(nil), codes...),
		Cube:      cube,
		Directory: dir,
	}, nil
}

func nullsToMissing(years [][]*float64) [][]float64 {
	out := make([][]float64, len(years))
	for y, seq := range years {
		out[y] = make([]float64, len(seq))
		for i, v := range seq {
			if v == nil {
				out[y][i] = dataset.Missing()
				continue
			}
			out[y][i] = *v
		}
	}
	return out
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	positions := errors.Positions(first)
	if len(positions) > 0 {
		return &LoadError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return &LoadError{Field: "cue", Message: first.Error()}
}
