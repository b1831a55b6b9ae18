package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/schoolstats/internal/prompt"
	"github.com/roach88/schoolstats/internal/report"
	"github.com/roach88/schoolstats/internal/testutil"
)

func newReportCmd(t *testing.T, format, input string, args ...string) (*bytes.Buffer, *bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewReportCommand(rootOpts)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(buf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf, errBuf, err
}

func TestReportCommand_TextByName(t *testing.T) {
	buf, _, err := newReportCmd(t, "text", "Henry Wise Wood High School\n")
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, report.Title+"\n\nShape of full data array: (10, 20, 3)\n"))
	assert.Contains(t, out, prompt.PromptText)
	assert.Contains(t, out, "Mean enrollment for Grade 10: 615")
	assert.Contains(t, out, "For all enrollments over 500, the median value was: 598")
	assert.Contains(t, out, "Total graduating class of 2022: 9795")

	// School section precedes the aggregate section.
	assert.Less(t,
		strings.Index(out, "***Requested School Statistics***"),
		strings.Index(out, "***General Statistics for All Schools***"))
}

func TestReportCommand_SchoolFlag(t *testing.T) {
	buf, _, err := newReportCmd(t, "text", "", "--school", "9836")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "School Name: Henry Wise Wood High School, School Code: 9836")
}

func TestReportCommand_SchoolFlagInvalidFallsBackToStdin(t *testing.T) {
	buf, _, err := newReportCmd(t, "text", "9836\n", "--school", "Henry")
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "You must enter a valid school name or code."))
	assert.Equal(t, 2, strings.Count(out, prompt.PromptText))
}

func TestReportCommand_InputClosed(t *testing.T) {
	buf, _, err := newReportCmd(t, "text", "not a school\n")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.ErrorIs(t, err, prompt.ErrInputClosed)
	assert.NotContains(t, buf.String(), "***Requested School Statistics***")
}

func TestReportCommand_JSON(t *testing.T) {
	buf, errBuf, err := newReportCmd(t, "json", "9836\n")
	require.NoError(t, err)

	var resp struct {
		Status  string `json:"status"`
		TraceID string `json:"trace_id"`
		Data    struct {
			SessionID string                 `json:"session_id"`
			School    report.SchoolReport    `json:"school_report"`
			Aggregate report.AggregateReport `json:"aggregate_report"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))

	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.TraceID)
	assert.Equal(t, resp.TraceID, resp.Data.SessionID)
	assert.Equal(t, "9836", resp.Data.School.School.Code)
	assert.Equal(t, int64(18093), resp.Data.School.TenYearTotal)
	require.NotNil(t, resp.Data.School.MedianOver500)
	assert.Equal(t, int64(598), *resp.Data.School.MedianOver500)
	assert.Equal(t, int64(9795), resp.Data.Aggregate.GraduatingClass)

	// The prompt goes to stderr so stdout stays a single document.
	assert.Contains(t, errBuf.String(), prompt.PromptText)
}

func TestReportCommand_MissingDataFile(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", Data: filepath.Join(t.TempDir(), "absent.cue")}
	cmd := NewReportCommand(rootOpts)
	cmd.SetIn(strings.NewReader("9836\n"))
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, ErrCodeNotFound, errorCode(err))
}

func TestRunReport_FixedSessionID(t *testing.T) {
	buf := &bytes.Buffer{}
	opts := &ReportOptions{
		RootOptions: &RootOptions{Format: "json"},
		School:      "Louise Dean School",
		IDs:         testutil.NewFixedSessionGenerator("session-42"),
	}
	cmd := NewReportCommand(opts.RootOptions)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})

	require.NoError(t, runReport(opts, cmd))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "session-42", resp.TraceID)
	assert.NotContains(t, buf.String(), "median_over_500")
}
