// Package diff computes line-level diffs between two text blobs. It is the
// engine behind the editor's "review optimized draft" view: the output keeps
// enough structure to reconstruct either input exactly.
package diff

import (
	"encoding/json"
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Kind classifies a segment relative to the "before" text.
type Kind int

const (
	Unchanged Kind = iota
	Added
	Removed
)

func (k Kind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unchanged"
	}
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "added":
		*k = Added
	case "removed":
		*k = Removed
	case "unchanged":
		*k = Unchanged
	default:
		return fmt.Errorf("unknown diff kind %q", s)
	}
	return nil
}

// Segment is a contiguous run of lines sharing one Kind.
type Segment struct {
	Text string `json:"text"`
	Kind Kind   `json:"kind"`
}

// Lines diffs two blobs at line granularity. Concatenating every segment
// except Removed ones reproduces after; skipping Added ones reproduces
// before. Two empty inputs yield an empty sequence; identical non-empty
// inputs yield a single Unchanged segment.
func Lines(before, after string) []Segment {
	dmp := diffmatchpatch.New()

	// Map whole lines to runes so the diff never splits mid-line.
	c1, c2, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(c1, c2, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	segments := make([]Segment, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		segments = append(segments, Segment{Text: d.Text, Kind: kindOf(d.Type)})
	}
	return segments
}

func kindOf(op diffmatchpatch.Operation) Kind {
	switch op {
	case diffmatchpatch.DiffInsert:
		return Added
	case diffmatchpatch.DiffDelete:
		return Removed
	default:
		return Unchanged
	}
}
