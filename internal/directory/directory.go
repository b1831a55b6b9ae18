// Package directory maps school names and school codes to each other and to
// their canonical index, the position shared by the name list, the code list
// and the school axis of the enrollment cube.
//
// Matching is exact: no trimming, no case folding, no normalization.
package directory

import "fmt"

// Display strings for lookups that miss.
const (
	CodeNotFound = "School code not found."
	NameNotFound = "School name not found."
)

// Entry is one school at its canonical index.
type Entry struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Code  string `json:"code"`
}

// Directory is a read-only bidirectional lookup built from two index-aligned lists.
type Directory struct {
	names      []string
	codes      []string
	nameToCode map[string]string
	codeToName map[string]string
	nameToIdx  map[string]int
	codeToIdx  map[string]int
}

// New builds a directory from parallel name and code lists. Duplicate keys in
// the name/code maps resolve last-write-wins; index lookups keep the first
// position, matching a linear search of the lists.
func New(names, codes []string) (*Directory, error) {
	if len(names) != len(codes) {
		return nil, fmt.Errorf("directory: %d names but %d codes", len(names), len(codes))
	}

	d := &Directory{
		names:      append([]string(nil), names...),
		codes:      append([]string(nil), codes...),
		nameToCode: make(map[string]string, len(names)),
		codeToName: make(map[string]string, len(codes)),
		nameToIdx:  make(map[string]int, len(names)),
		codeToIdx:  make(map[string]int, len(codes)),
	}
	for i := range d.names {
		name, code := d.names[i], d.codes[i]
		d.nameToCode[name] = code
		d.codeToName[code] = name
		if _, seen := d.nameToIdx[name]; !seen {
			d.nameToIdx[name] = i
		}
		if _, seen := d.codeToIdx[code]; !seen {
			d.codeToIdx[code] = i
		}
	}
	return d, nil
}

// Len returns the number of schools.
func (d *Directory) Len() int {
	return len(d.names)
}

// Entries returns every school in index order.
func (d *Directory) Entries() []Entry {
	out := make([]Entry, len(d.names))
	for i := range d.names {
		out[i] = Entry{Index: i, Name: d.names[i], Code: d.codes[i]}
	}
	return out
}

// CodeForName returns the code registered for name.
func (d *Directory) CodeForName(name string) (string, bool) {
	code, ok := d.nameToCode[name]
	return code, ok
}

// NameForCode returns the name registered for code.
func (d *Directory) NameForCode(code string) (string, bool) {
	name, ok := d.codeToName[code]
	return name, ok
}

// CodeForNameOrSentinel is CodeForName with CodeNotFound on a miss.
func (d *Directory) CodeForNameOrSentinel(name string) string {
	if code, ok := d.CodeForName(name); ok {
		return code
	}
	return CodeNotFound
}

// NameForCodeOrSentinel is NameForCode with NameNotFound on a miss.
func (d *Directory) NameForCodeOrSentinel(code string) string {
	if name, ok := d.NameForCode(code); ok {
		return name
	}
	return NameNotFound
}

// IndexForName returns the first index holding name, or -1.
func (d *Directory) IndexForName(name string) int {
	if i, ok := d.nameToIdx[name]; ok {
		return i
	}
	return -1
}

// IndexForCode returns the first index holding code, or -1.
func (d *Directory) IndexForCode(code string) int {
	if i, ok := d.codeToIdx[code]; ok {
		return i
	}
	return -1
}

// Resolve matches input against names first, then codes. The returned entry
// carries the canonical code for the matched school.
func (d *Directory) Resolve(input string) (Entry, bool) {
	code := input
	if d.IndexForName(input) >= 0 {
		code, _ = d.CodeForName(input)
	} else if d.IndexForCode(input) < 0 {
		return Entry{Index: -1}, false
	}

	idx := d.IndexForCode(code)
	name, _ := d.NameForCode(code)
	return Entry{Index: idx, Name: name, Code: code}, true
}
