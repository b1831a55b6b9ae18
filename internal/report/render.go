package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/roach88/schoolstats/internal/dataset"
)

// Title is the first line of every session.
const Title = "ENSF 692 School Enrollment Statistics"

// NoneOver500 replaces the median line when no enrollment exceeds the threshold.
const NoneOver500 = "No enrollments over 500."

// lineWriter stops writing after the first error and remembers it.
type lineWriter struct {
	w   io.Writer
	err error
}

func (lw *lineWriter) printf(format string, args ...any) {
	if lw.err != nil {
		return
	}
	_, lw.err = fmt.Fprintf(lw.w, format+"\n", args...)
}

// RenderHeader writes the title and the cube's shape.
func RenderHeader(w io.Writer, cube *dataset.Cube) error {
	shape := cube.Shape()
	dims := make([]string, len(shape))
	for i, n := range shape {
		dims[i] = fmt.Sprintf("%d", n)
	}

	lw := &lineWriter{w: w}
	lw.printf("%s", Title)
	lw.printf("")
	lw.printf("Shape of full data array: (%s)", strings.Join(dims, ", "))
	lw.printf("Dimensions of full data array: %d", cube.NDim())
	return lw.err
}

// RenderSchool writes the requested-school section.
func RenderSchool(w io.Writer, rep SchoolReport) error {
	lw := &lineWriter{w: w}
	lw.printf("")
	lw.printf("***Requested School Statistics***")
	lw.printf("")
	lw.printf("School Name: %s, School Code: %s", rep.School.Name, rep.School.Code)
	for g, mean := range rep.GradeMeans {
		lw.printf("Mean enrollment for Grade %d: %s", 10+g, mean)
	}
	lw.printf("Highest enrollment for a single grade: %s", rep.Highest)
	lw.printf("Lowest enrollment for a single grade: %s", rep.Lowest)
	for _, yt := range rep.YearTotals {
		lw.printf("Total enrollment for %d: %d", yt.Year, yt.Total)
	}
	lw.printf("Total ten year enrollment: %d", rep.TenYearTotal)
	lw.printf("Mean total enrollment over 10 years: %d", rep.MeanYearTotal)
	if rep.MedianOver500 != nil {
		lw.printf("For all enrollments over 500, the median value was: %d", *rep.MedianOver500)
	} else {
		lw.printf("%s", NoneOver500)
	}
	return lw.err
}

// RenderAggregate writes the all-schools section.
func RenderAggregate(w io.Writer, rep AggregateReport) error {
	lw := &lineWriter{w: w}
	lw.printf("")
	lw.printf("***General Statistics for All Schools***")
	lw.printf("")
	lw.printf("Mean enrollment in %d: %s", rep.FirstYear, rep.FirstYearMean)
	lw.printf("Mean enrollment in %d: %s", rep.LastYear, rep.LastYearMean)
	lw.printf("Total graduating class of %d: %d", rep.LastYear, rep.GraduatingClass)
	lw.printf("Highest enrollment for a single grade: %s", rep.Highest)
	lw.printf("Lowest enrollment for a single grade: %s", rep.Lowest)
	return lw.err
}
