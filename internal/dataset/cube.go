package dataset

import (
	"fmt"
	"math"
)

// Fixed dimensions of the enrollment cube.
const (
	Years   = 10
	Schools = 20
	Grades  = 3
)

// All selects every index along an axis.
const All = -1

// Cube is an immutable (Years, Schools, Grades) array of enrollment counts.
type Cube struct {
	cells [Years][Schools][Grades]float64
}

// Selection picks a slice of the cube. Each field is an index or All.
type Selection struct {
	Year   int
	School int
	Grade  int
}

// ShapeError reports a year sequence that cannot be reshaped to (Schools, Grades).
type ShapeError struct {
	Year   int // index of the offending sequence, -1 for a bad sequence count
	Length int
	Reason string
}

func (e *ShapeError) Error() string {
	if e.Year < 0 {
		return fmt.Sprintf("dataset: %s (got %d years)", e.Reason, e.Length)
	}
	return fmt.Sprintf("dataset: year %d: %s (got %d values)", e.Year, e.Reason, e.Length)
}

// Missing returns the missing-value marker.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether v is the missing-value marker.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Build reshapes each year sequence into a (Schools, Grades) grid and stacks
// the grids along a leading year axis. The input slices are copied.
func Build(years [][]float64) (*Cube, error) {
	if len(years) != Years {
		return nil, &ShapeError{Year: -1, Length: len(years), Reason: fmt.Sprintf("expected %d year sequences", Years)}
	}

	c := &Cube{}
	for y, seq := range years {
		if len(seq)%Grades != 0 {
			return nil, &ShapeError{Year: y, Length: len(seq), Reason: fmt.Sprintf("length is not a multiple of %d", Grades)}
		}
		if len(seq) != Schools*Grades {
			return nil, &ShapeError{Year: y, Length: len(seq), Reason: fmt.Sprintf("cannot reshape to (%d, %d)", Schools, Grades)}
		}
		for i, v := range seq {
			c.cells[y][i/Grades][i%Grades] = v
		}
	}
	return c, nil
}

// Shape returns the cube dimensions in axis order.
func (c *Cube) Shape() [3]int {
	return [3]int{Years, Schools, Grades}
}

// NDim returns the number of axes.
func (c *Cube) NDim() int {
	return len(c.Shape())
}

// At returns a single cell. It panics on an out-of-range index.
func (c *Cube) At(year, school, grade int) float64 {
	return c.cells[year][school][grade]
}

// Select returns the cells picked by sel in (year, school, grade) order.
// Missing cells are included as NaN so callers decide how to treat them.
func (c *Cube) Select(sel Selection) []float64 {
	ys := axis(sel.Year, Years)
	ss := axis(sel.School, Schools)
	gs := axis(sel.Grade, Grades)

	out := make([]float64, 0, len(ys)*len(ss)*len(gs))
	for _, y := range ys {
		for _, s := range ss {
			for _, g := range gs {
				out = append(out, c.cells[y][s][g])
			}
		}
	}
	return out
}

// Flat returns one year's cells in the row-major layout accepted by Build.
func (c *Cube) Flat(year int) []float64 {
	return c.Select(Selection{Year: year, School: All, Grade: All})
}

func axis(idx, n int) []int {
	if idx != All {
		if idx < 0 || idx >= n {
			panic(fmt.Sprintf("dataset: index %d out of range [0,%d)", idx, n))
		}
		return []int{idx}
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
