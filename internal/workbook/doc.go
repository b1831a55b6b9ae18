// Package workbook writes and reads the enrollment table as an Excel
// workbook.
//
// A workbook has two sheets. "Schools" lists index, name and code, one
// school per row. "Enrollment" holds one row per (year, school) pair with
// the calendar year, the school code and the three grade counts. An empty
// grade cell is a missing count.
package workbook
