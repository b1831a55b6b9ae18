package session

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/schoolstats/internal/datafile"
	"github.com/roach88/schoolstats/internal/prompt"
	"github.com/roach88/schoolstats/internal/report"
	"github.com/roach88/schoolstats/internal/testutil"
)

func defaultTable(t *testing.T) *datafile.Table {
	t.Helper()
	tbl, err := datafile.Default()
	require.NoError(t, err)
	return tbl
}

func runSession(t *testing.T, input string) (Outcome, string) {
	t.Helper()
	out := &bytes.Buffer{}
	res, err := Run(context.Background(), Config{
		Table:  defaultTable(t),
		In:     strings.NewReader(input),
		Out:    out,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		IDs:    testutil.NewFixedSessionGenerator("s-1"),
	})
	require.NoError(t, err)
	return res, out.String()
}

func TestRun_NameAndCodeGiveSameReport(t *testing.T) {
	byName, nameOut := runSession(t, "Henry Wise Wood High School\n")
	byCode, codeOut := runSession(t, "9836\n")

	assert.Equal(t, byName.School, byCode.School)
	assert.Equal(t, byName.Aggregate, byCode.Aggregate)
	assert.Equal(t, nameOut, codeOut)
	assert.Contains(t, nameOut, "School Name: Henry Wise Wood High School, School Code: 9836\n")
}

func TestRun_OneRepromptForUnknownSchool(t *testing.T) {
	res, out := runSession(t, "Nonexistent High\n9836\n")

	assert.Equal(t, 1, res.Resolution.Invalid)
	assert.Equal(t, 1, strings.Count(out, "You must enter a valid school name or code."))
	assert.Equal(t, 2, strings.Count(out, prompt.PromptText))
}

func TestRun_SmallSchoolHasNoMedian(t *testing.T) {
	res, out := runSession(t, "Louise Dean School\n")

	assert.Nil(t, res.School.MedianOver500)
	assert.Contains(t, out, report.NoneOver500+"\n")
	assert.NotContains(t, out, "the median value was")
}

func TestRun_SectionOrder(t *testing.T) {
	_, out := runSession(t, "9836\n")

	order := []string{
		report.Title,
		"Shape of full data array: (10, 20, 3)",
		prompt.PromptText,
		"***Requested School Statistics***",
		"Mean enrollment for Grade 10:",
		"Total enrollment for 2013:",
		"Total enrollment for 2022:",
		"Total ten year enrollment:",
		"***General Statistics for All Schools***",
		"Mean enrollment in 2013:",
		"Lowest enrollment for a single grade:",
	}
	last := -1
	for _, s := range order {
		idx := strings.Index(out, s)
		require.GreaterOrEqual(t, idx, 0, "missing %q", s)
		assert.Greater(t, idx, last, "%q out of order", s)
		last = idx
	}
}

func TestRun_InputClosed(t *testing.T) {
	_, err := Run(context.Background(), Config{
		Table:  defaultTable(t),
		In:     strings.NewReader(""),
		Out:    io.Discard,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.ErrorIs(t, err, prompt.ErrInputClosed)
}

func TestCompute_DefaultIDIsUUIDv7(t *testing.T) {
	res, err := Compute(context.Background(), Config{
		Table:  defaultTable(t),
		In:     strings.NewReader("9836\n"),
		Out:    io.Discard,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	id, err := uuid.Parse(res.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}
