// Package report computes the per-school and all-schools enrollment reports
// and renders them as labelled terminal lines.
//
// All values are floored toward negative infinity before display. A
// statistic over a slice with no recorded cells is Unavailable.
package report

import (
	"fmt"

	"github.com/roach88/schoolstats/internal/dataset"
	"github.com/roach88/schoolstats/internal/directory"
	"github.com/roach88/schoolstats/internal/stats"
)

// MedianThreshold is the enrollment above which values enter the median.
const MedianThreshold = 500

// Value is a floored statistic, or Unavailable when its slice was entirely missing.
type Value struct {
	N     int64 `json:"value"`
	Valid bool  `json:"valid"`
}

// Unavailable is the sentinel for a statistic with no recorded cells.
var Unavailable = Value{}

func (v Value) String() string {
	if !v.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%d", v.N)
}

func floored(v float64, ok bool) Value {
	if !ok {
		return Unavailable
	}
	return Value{N: stats.Floor(v), Valid: true}
}

// YearTotal is one school's enrollment summed over grades for a calendar year.
type YearTotal struct {
	Year  int   `json:"year"`
	Total int64 `json:"total"`
}

// SchoolReport holds the statistics for one school across all years.
type SchoolReport struct {
	School        directory.Entry       `json:"school"`
	GradeMeans    [dataset.Grades]Value `json:"grade_means"`
	Highest       Value                 `json:"highest"`
	Lowest        Value                 `json:"lowest"`
	YearTotals    []YearTotal           `json:"year_totals"`
	TenYearTotal  int64                 `json:"ten_year_total"`
	MeanYearTotal int64                 `json:"mean_year_total"`
	// MedianOver500 is nil when no single enrollment exceeds MedianThreshold.
	MedianOver500 *int64 `json:"median_over_500,omitempty"`
}

// AggregateReport holds statistics spanning every school.
type AggregateReport struct {
	FirstYear       int   `json:"first_year"`
	LastYear        int   `json:"last_year"`
	FirstYearMean   Value `json:"first_year_mean"`
	LastYearMean    Value `json:"last_year_mean"`
	GraduatingClass int64 `json:"graduating_class"`
	Highest         Value `json:"highest"`
	Lowest          Value `json:"lowest"`
}

// Reporter computes reports over a cube and its school directory.
type Reporter struct {
	cube      *dataset.Cube
	dir       *directory.Directory
	firstYear int
}

// NewReporter returns a reporter. firstYear is the calendar year of year index 0.
func NewReporter(cube *dataset.Cube, dir *directory.Directory, firstYear int) *Reporter {
	return &Reporter{cube: cube, dir: dir, firstYear: firstYear}
}

// School computes the report for the school at a canonical index.
func (r *Reporter) School(index int) (SchoolReport, error) {
	if index < 0 || index >= dataset.Schools || index >= r.dir.Len() {
		return SchoolReport{}, fmt.Errorf("report: school index %d out of range", index)
	}

	entry := r.dir.Entries()[index]
	rep := SchoolReport{School: entry}

	for g := 0; g < dataset.Grades; g++ {
		rep.GradeMeans[g] = floored(stats.Mean(r.cube.Select(dataset.Selection{Year: dataset.All, School: index, Grade: g})))
	}

	all := r.cube.Select(dataset.Selection{Year: dataset.All, School: index, Grade: dataset.All})
	rep.Highest = floored(stats.Max(all))
	rep.Lowest = floored(stats.Min(all))

	rep.YearTotals = make([]YearTotal, dataset.Years)
	for y := 0; y < dataset.Years; y++ {
		total := stats.Sum(r.cube.Select(dataset.Selection{Year: y, School: index, Grade: dataset.All}))
		rep.YearTotals[y] = YearTotal{Year: r.firstYear + y, Total: stats.Floor(total)}
	}

	grand := stats.Sum(all)
	rep.TenYearTotal = stats.Floor(grand)
	rep.MeanYearTotal = stats.Floor(grand / dataset.Years)

	if over := stats.Above(all, MedianThreshold); len(over) > 0 {
		med, _ := stats.Median(over)
		m := stats.Floor(med)
		rep.MedianOver500 = &m
	}
	return rep, nil
}

// Aggregate computes the all-schools report. It does not depend on any
// resolved school.
func (r *Reporter) Aggregate() AggregateReport {
	last := dataset.Years - 1
	return AggregateReport{
		FirstYear:       r.firstYear,
		LastYear:        r.firstYear + last,
		FirstYearMean:   floored(stats.Mean(r.cube.Select(dataset.Selection{Year: 0, School: dataset.All, Grade: dataset.All}))),
		LastYearMean:    floored(stats.Mean(r.cube.Select(dataset.Selection{Year: last, School: dataset.All, Grade: dataset.All}))),
		GraduatingClass: stats.Floor(stats.Sum(r.cube.Select(dataset.Selection{Year: last, School: dataset.All, Grade: dataset.Grades - 1}))),
		Highest:         floored(stats.Max(r.cube.Select(dataset.Selection{Year: dataset.All, School: dataset.All, Grade: dataset.All}))),
		Lowest:          floored(stats.Min(r.cube.Select(dataset.Selection{Year: dataset.All, School: dataset.All, Grade: dataset.All}))),
	}
}
