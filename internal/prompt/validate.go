package prompt

import (
	"strings"
	"unicode/utf8"
)

// DefaultFolder is the sentinel for uncategorized prompts.
const DefaultFolder = "Library"

const maxTitleLen = 180

// Input carries the user-editable fields of a prompt.
type Input struct {
	Title  string   `json:"title"`
	Body   string   `json:"body_md"`
	Tags   []string `json:"tags"`
	Folder string   `json:"folder"`
}

func validateInput(in Input) (Input, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, ValidationError("title is required")
	}
	if utf8.RuneCountInString(in.Title) > maxTitleLen {
		return in, ValidationError("title must be at most 180 characters")
	}
	if strings.TrimSpace(in.Body) == "" {
		return in, ValidationError("prompt body is required")
	}
	in.Tags = normalizeTags(in.Tags)
	in.Folder = strings.TrimSpace(in.Folder)
	if in.Folder == "" {
		in.Folder = DefaultFolder
	}
	return in, nil
}

// normalizeTags lower-cases, trims, and deduplicates while keeping first
// occurrence order. Tag sets are order-insignificant downstream.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
