// Package harness replays scripted terminal sessions against an enrollment
// table and checks the transcript.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: henry_wise_wood_by_code
//	description: "Code input resolves to the same report as the name"
//	data: tables/small.cue      # optional, relative to the scenario file
//	inputs:
//	  - "Nonexistent High"
//	  - "9836"
//	assertions:
//	  - type: reprompt_count
//	    count: 1
//	  - type: school
//	    name: Henry Wise Wood High School
//	    code: "9836"
//	  - type: output_contains
//	    text: "Total ten year enrollment:"
//
// Without data the embedded table is used.
//
// # Assertion Types
//
//   - output_contains: the transcript contains text
//   - output_lacks: the transcript does not contain text
//   - reprompt_count: exactly count invalid-input messages were shown
//   - school: the resolved school has the given name and/or code
//   - median_absent: no value exceeded the median threshold
//
// # Golden Transcripts
//
// The full transcript can also be compared against
// golden/<scenario-file-name>.golden next to the scenario file. Session ids
// never appear in the transcript, so runs are byte-identical.
package harness
