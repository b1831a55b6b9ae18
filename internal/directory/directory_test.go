package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNames = []string{"Centennial High School", "Robert Thirsk School", "Henry Wise Wood High School"}
	testCodes = []string{"1224", "1679", "9836"}
)

func newTestDirectory(t *testing.T) *Directory {
	t.Helper()
	d, err := New(testNames, testCodes)
	require.NoError(t, err)
	return d
}

func TestNew_RejectsMismatchedLists(t *testing.T) {
	_, err := New(testNames, testCodes[:2])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 names but 2 codes")
}

func TestRoundTrip_Names(t *testing.T) {
	d := newTestDirectory(t)

	for i, name := range testNames {
		assert.Equal(t, i, d.IndexForName(name))

		code, ok := d.CodeForName(name)
		require.True(t, ok)
		back, ok := d.NameForCode(code)
		require.True(t, ok)
		assert.Equal(t, name, back)
	}
}

func TestRoundTrip_Codes(t *testing.T) {
	d := newTestDirectory(t)

	for _, code := range testCodes {
		name, ok := d.NameForCode(code)
		require.True(t, ok)
		assert.Equal(t, d.IndexForName(name), d.IndexForCode(code))
	}
}

func TestLookupMisses(t *testing.T) {
	d := newTestDirectory(t)

	_, ok := d.CodeForName("Nonexistent High")
	assert.False(t, ok)
	_, ok = d.NameForCode("0000")
	assert.False(t, ok)

	assert.Equal(t, CodeNotFound, d.CodeForNameOrSentinel("Nonexistent High"))
	assert.Equal(t, NameNotFound, d.NameForCodeOrSentinel("0000"))
	assert.Equal(t, -1, d.IndexForName("Nonexistent High"))
	assert.Equal(t, -1, d.IndexForCode("0000"))
}

func TestLookups_AreExact(t *testing.T) {
	d := newTestDirectory(t)

	for _, input := range []string{"henry wise wood high school", " 9836", "9836 ", "Henry Wise Wood High School\n"} {
		_, ok := d.Resolve(input)
		assert.False(t, ok, "input %q should not match", input)
	}
}

func TestResolve(t *testing.T) {
	d := newTestDirectory(t)

	byName, ok := d.Resolve("Henry Wise Wood High School")
	require.True(t, ok)
	byCode, ok := d.Resolve("9836")
	require.True(t, ok)

	assert.Equal(t, Entry{Index: 2, Name: "Henry Wise Wood High School", Code: "9836"}, byName)
	assert.Equal(t, byName, byCode)

	miss, ok := d.Resolve("Nonexistent High")
	assert.False(t, ok)
	assert.Equal(t, -1, miss.Index)
}

func TestDuplicates_FirstIndexLastWriteMap(t *testing.T) {
	d, err := New([]string{"A", "B", "A"}, []string{"1", "2", "3"})
	require.NoError(t, err)

	assert.Equal(t, 0, d.IndexForName("A"))
	code, _ := d.CodeForName("A")
	assert.Equal(t, "3", code)
}

func TestEntries(t *testing.T) {
	d := newTestDirectory(t)

	entries := d.Entries()
	require.Len(t, entries, d.Len())
	assert.Equal(t, Entry{Index: 1, Name: "Robert Thirsk School", Code: "1679"}, entries[1])
}
