// Package testutil provides hand-checkable fixtures shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/schoolstats/internal/dataset"
	"github.com/roach88/schoolstats/internal/directory"
)

// FixtureFirstYear is the calendar year of year index 0 in the fixture.
const FixtureFirstYear = 2013

// Schools with notable fixture properties.
const (
	SmallSchool    = 3  // every cell below 500
	PatchySchool   = 4  // year 0 missing entirely, year 5 grade 11 missing
	BoundarySchool = 10 // year 0 grade 10 is exactly 500
	LargeSchool    = 12 // every cell above 500
)

// FixtureValue is the fixture's enrollment at (year, school, grade),
// ignoring missing cells: 50*school + 10*year + grade.
func FixtureValue(year, school, grade int) float64 {
	return float64(50*school + 10*year + grade)
}

// FixtureYears returns ten flat year sequences in Build's row-major layout.
func FixtureYears() [][]float64 {
	years := make([][]float64, dataset.Years)
	for y := range years {
		seq := make([]float64, 0, dataset.Schools*dataset.Grades)
		for s := 0; s < dataset.Schools; s++ {
			for g := 0; g < dataset.Grades; g++ {
				v := FixtureValue(y, s, g)
				if s == PatchySchool && (y == 0 || (y == 5 && g == 1)) {
					v = dataset.Missing()
				}
				seq = append(seq, v)
			}
		}
		years[y] = seq
	}
	return years
}

// FixtureNames returns "School 00" through "School 19".
func FixtureNames() []string {
	names := make([]string, dataset.Schools)
	for i := range names {
		names[i] = fmt.Sprintf("School %02d", i)
	}
	return names
}

// FixtureCodes returns "C00" through "C19".
func FixtureCodes() []string {
	codes := make([]string, dataset.Schools)
	for i := range codes {
		codes[i] = fmt.Sprintf("C%02d", i)
	}
	return codes
}

// FixtureCube builds the fixture cube or fails the test.
func FixtureCube(t testing.TB) *dataset.Cube {
	t.Helper()
	cube, err := dataset.Build(FixtureYears())
	require.NoError(t, err)
	return cube
}

// FixtureDirectory builds the fixture directory or fails the test.
func FixtureDirectory(t testing.TB) *directory.Directory {
	t.Helper()
	dir, err := directory.New(FixtureNames(), FixtureCodes())
	require.NoError(t, err)
	return dir
}
