package optimize

import (
	"strings"
	"testing"
)

func TestBuildRequest_MessageShape(t *testing.T) {
	req := BuildRequest("X", "Succinct", "gpt-4o-mini")

	if len(req.Messages) != 2 {
		t.Fatalf("expected system+user messages, got %d", len(req.Messages))
	}
	if req.Messages[0].Role != "system" {
		t.Errorf("first message role = %q, want system", req.Messages[0].Role)
	}
	if req.Messages[1].Role != "user" {
		t.Errorf("second message role = %q, want user", req.Messages[1].Role)
	}
	if req.Messages[1].Content != "X" {
		t.Errorf("user content = %q, want unmodified prompt text", req.Messages[1].Content)
	}
	if !strings.Contains(req.Messages[0].Content, "Preferred style: Succinct") {
		t.Errorf("system message missing style hint: %q", req.Messages[0].Content)
	}
}

func TestBuildRequest_NoStyleHint(t *testing.T) {
	req := BuildRequest("rewrite this prompt", "", "gpt-4o-mini")

	if strings.Contains(req.Messages[0].Content, "Preferred style:") {
		t.Errorf("system message must not mention a style when none was given")
	}
	if !strings.Contains(req.Messages[0].Content, `"optimized"`) {
		t.Errorf("system message must require the structured JSON reply")
	}
}

func TestBuildRequest_FixedParameters(t *testing.T) {
	req := BuildRequest("anything", "", "claude-sonnet-4-20250514")

	if req.Model != "claude-sonnet-4-20250514" {
		t.Errorf("model = %q", req.Model)
	}
	if req.Temperature != 0.3 {
		t.Errorf("temperature = %v, want 0.3", req.Temperature)
	}
	if req.MaxTokens != 600 {
		t.Errorf("max tokens = %d, want 600", req.MaxTokens)
	}
}

func TestBuildRequest_Deterministic(t *testing.T) {
	a := BuildRequest("same prompt", "Succinct", "gpt-4o-mini")
	b := BuildRequest("same prompt", "Succinct", "gpt-4o-mini")

	if a.Messages[0].Content != b.Messages[0].Content || a.Messages[1].Content != b.Messages[1].Content {
		t.Error("identical inputs must build identical payloads")
	}
}
