// Package notes loads the human-maintained triage notes document and answers
// lookups against it. The document is a YAML mapping with a single `tests`
// key holding an ordered list of entries:
//
//	tests:
//	  - name: "suite.TestSomething"
//	    description: "tracked upstream"
//	    label: failing
//	    links:
//	      - https://issues.example.com/123
//
// A Store is read once and never mutated.
package notes
