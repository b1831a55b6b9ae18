// Package dataset holds the enrollment cube: ten years of per-grade
// enrollment counts for twenty schools, shaped (year, school, grade).
//
// The cube is built once from flat per-year sequences and is read-only
// afterwards. Unrecorded cells carry the missing marker (NaN); callers
// select slices with Select and hand them to the stats package, which
// skips missing cells.
//
// # Layout
//
// Each year sequence holds 60 values in row-major order: the first three
// values are school 0's grades 10, 11 and 12, the next three belong to
// school 1, and so on.
package dataset
