// Package datafile loads the static enrollment table.
//
// The table is written in CUE and unified with the #Table schema embedded
// in this package. The default table ships inside the binary; Load reads an
// alternative file with the same shape.
//
// A table file looks like:
//
//	first_year: 2013
//	names: ["Centennial High School", ...]   // 20 names
//	codes: ["1224", ...]                     // 20 codes, index-aligned with names
//	years: [
//		[583, 571, 600, 448, null, null, ...], // 60 counts per year
//		...
//	]
//
// null marks an unrecorded count and becomes the dataset missing marker.
package datafile
