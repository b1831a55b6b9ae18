// Package store keeps SQLite snapshots of an enrollment table.
//
// A snapshot holds the school directory and every enrollment cell, so a
// report can run against a table that was exported earlier without the
// original CUE file. Missing cells are stored as NULL.
//
// # Tables
//
//   - meta: one row, the calendar year of year index 0
//   - schools: idx, name, code
//   - enrollments: year_idx, school_idx, grade_idx, count (NULL when missing)
//
// # Database Configuration
//
//   - WAL mode
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
//
// Reads always order by index columns so a snapshot loads back into the
// same cube it was written from.
package store
