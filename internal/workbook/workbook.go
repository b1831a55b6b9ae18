package workbook

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/roach88/schoolstats/internal/datafile"
	"github.com/roach88/schoolstats/internal/dataset"
)

// Sheet names.
const (
	SchoolsSheet    = "Schools"
	EnrollmentSheet = "Enrollment"
)

var (
	schoolsHeader    = []any{"Index", "Name", "Code"}
	enrollmentHeader = []any{"Year", "Code", "Grade 10", "Grade 11", "Grade 12"}
)

// Write saves tbl to path as an .xlsx workbook, replacing any existing file.
func Write(tbl *datafile.Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes "Schools".
	if err := f.SetSheetName(f.GetSheetName(0), SchoolsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := setRow(f, SchoolsSheet, 1, schoolsHeader); err != nil {
		return err
	}
	for _, e := range tbl.Directory.Entries() {
		if err := setRow(f, SchoolsSheet, e.Index+2, []any{e.Index, e.Name, e.Code}); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(EnrollmentSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := setRow(f, EnrollmentSheet, 1, enrollmentHeader); err != nil {
		return err
	}
	row := 2
	for y := 0; y < dataset.Years; y++ {
		for sc := 0; sc < dataset.Schools; sc++ {
			values := []any{tbl.FirstYear + y, tbl.Codes[sc]}
			for g := 0; g < dataset.Grades; g++ {
				v := tbl.Cube.At(y, sc, g)
				if dataset.IsMissing(v) {
					values = append(values, nil)
					continue
				}
				values = append(values, v)
			}
			if err := setRow(f, EnrollmentSheet, row, values); err != nil {
				return err
			}
			row++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("%s row %d: %w", sheet, row, err)
	}
	return nil
}

// Read loads a workbook written by Write and validates it the same way
// as any other table source.
func Read(path string) (*datafile.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	schoolRows, err := f.GetRows(SchoolsSheet)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", SchoolsSheet, err)
	}
	var names, codes []string
	for i, r := range dataRows(schoolRows) {
		if len(r) < 3 {
			return nil, fmt.Errorf("%s row %d: want index, name and code", SchoolsSheet, i+2)
		}
		if idx, err := strconv.Atoi(r[0]); err != nil || idx != i {
			return nil, fmt.Errorf("%s row %d: index %q out of sequence", SchoolsSheet, i+2, r[0])
		}
		names = append(names, r[1])
		codes = append(codes, r[2])
	}

	enrollRows, err := f.GetRows(EnrollmentSheet)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", EnrollmentSheet, err)
	}
	rows := dataRows(enrollRows)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: no rows", EnrollmentSheet)
	}
	firstYear, err := strconv.Atoi(rows[0][0])
	if err != nil {
		return nil, fmt.Errorf("%s row 2: year %q: %w", EnrollmentSheet, rows[0][0], err)
	}

	// Year slices are grown per calendar year so a short or ragged sheet
	// surfaces as a shape error from the dataset builder.
	var years [][]float64
	for i, r := range rows {
		if len(r) < 2 {
			return nil, fmt.Errorf("%s row %d: want year and code", EnrollmentSheet, i+2)
		}
		year, err := strconv.Atoi(r[0])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: year %q: %w", EnrollmentSheet, i+2, r[0], err)
		}
		y := year - firstYear
		if y < 0 || y > len(years) {
			return nil, fmt.Errorf("%s row %d: year %d out of order", EnrollmentSheet, i+2, year)
		}
		if y == len(years) {
			years = append(years, nil)
		}
		if sc := len(years[y]) / dataset.Grades; sc < len(codes) && r[1] != codes[sc] {
			return nil, fmt.Errorf("%s row %d: code %q, want %q for school %d", EnrollmentSheet, i+2, r[1], codes[sc], sc)
		}
		for g := 0; g < dataset.Grades; g++ {
			v, err := parseCount(r, 2+g)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: %w", EnrollmentSheet, i+2, err)
			}
			years[y] = append(years[y], v)
		}
	}

	return datafile.FromRaw(firstYear, names, codes, years)
}

// dataRows drops the header row and trailing blank rows.
func dataRows(rows [][]string) [][]string {
	if len(rows) <= 1 {
		return nil
	}
	rows = rows[1:]
	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}
	return rows
}

func parseCount(r []string, col int) (float64, error) {
	if col >= len(r) || strings.TrimSpace(r[col]) == "" {
		return dataset.Missing(), nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(r[col]), 64)
	if err != nil {
		return 0, fmt.Errorf("count %q: %w", r[col], err)
	}
	return v, nil
}
