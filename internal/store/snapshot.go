package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/schoolstats/internal/datafile"
	"github.com/roach88/schoolstats/internal/dataset"
)

// ErrNoSnapshot is returned by LoadTable when nothing has been saved yet.
var ErrNoSnapshot = errors.New("store: no snapshot saved")

// SaveTable replaces the stored snapshot with tbl in a single transaction.
func (s *Store) SaveTable(ctx context.Context, tbl *datafile.Table) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range []string{"DELETE FROM enrollments", "DELETE FROM schools", "DELETE FROM meta"} {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear snapshot: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx, "INSERT INTO meta (id, first_year) VALUES (1, ?)", tbl.FirstYear); err != nil {
		return fmt.Errorf("insert meta: %w", err)
	}

	for _, e := range tbl.Directory.Entries() {
		if _, err = tx.ExecContext(ctx, "INSERT INTO schools (idx, name, code) VALUES (?, ?, ?)", e.Index, e.Name, e.Code); err != nil {
			return fmt.Errorf("insert school %d: %w", e.Index, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO enrollments (year_idx, school_idx, grade_idx, count) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare enrollments: %w", err)
	}
	defer stmt.Close()

	for y := 0; y < dataset.Years; y++ {
		for sc := 0; sc < dataset.Schools; sc++ {
			for g := 0; g < dataset.Grades; g++ {
				var count sql.NullFloat64
				if v := tbl.Cube.At(y, sc, g); !dataset.IsMissing(v) {
					count = sql.NullFloat64{Float64: v, Valid: true}
				}
				if _, err = stmt.ExecContext(ctx, y, sc, g, count); err != nil {
					return fmt.Errorf("insert enrollment (%d,%d,%d): %w", y, sc, g, err)
				}
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// LoadTable rebuilds the stored snapshot. Cells absent from the
// enrollments table load as missing.
func (s *Store) LoadTable(ctx context.Context) (*datafile.Table, error) {
	var firstYear int
	err := s.db.QueryRowContext(ctx, "SELECT first_year FROM meta WHERE id = 1").Scan(&firstYear)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("read meta: %w", err)
	}

	names, codes, err := s.readSchools(ctx)
	if err != nil {
		return nil, err
	}

	years := make([][]float64, dataset.Years)
	for y := range years {
		years[y] = make([]float64, dataset.Schools*dataset.Grades)
		for i := range years[y] {
			years[y][i] = dataset.Missing()
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT year_idx, school_idx, grade_idx, count
		FROM enrollments
		ORDER BY year_idx, school_idx, grade_idx`)
	if err != nil {
		return nil, fmt.Errorf("read enrollments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var y, sc, g int
		var count sql.NullFloat64
		if err := rows.Scan(&y, &sc, &g, &count); err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		if y < 0 || y >= dataset.Years || sc < 0 || sc >= dataset.Schools || g < 0 || g >= dataset.Grades {
			return nil, fmt.Errorf("enrollment (%d,%d,%d) outside cube", y, sc, g)
		}
		if count.Valid {
			years[y][sc*dataset.Grades+g] = count.Float64
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read enrollments: %w", err)
	}

	return datafile.FromRaw(firstYear, names, codes, years)
}

func (s *Store) readSchools(ctx context.Context) ([]string, []string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT idx, name, code FROM schools ORDER BY idx")
	if err != nil {
		return nil, nil, fmt.Errorf("read schools: %w", err)
	}
	defer rows.Close()

	var names, codes []string
	for rows.Next() {
		var idx int
		var name, code string
		if err := rows.Scan(&idx, &name, &code); err != nil {
			return nil, nil, fmt.Errorf("scan school: %w", err)
		}
		if idx != len(names) {
			return nil, nil, fmt.Errorf("school index %d out of sequence", idx)
		}
		names = append(names, name)
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("read schools: %w", err)
	}
	return names, codes, nil
}
