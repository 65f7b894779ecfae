package optimize

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/promptsmith/promptsmith/internal/llm"
)

type mockProvider struct {
	content string
	err     error
	calls   int
	lastReq llm.ChatRequest
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) ChatCompletion(_ context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &llm.ChatResponse{Provider: "mock", Content: m.content}, nil
}

func fastRetries(t *testing.T) {
	t.Helper()
	saved := initialDelay
	initialDelay = time.Millisecond
	t.Cleanup(func() { initialDelay = saved })
}

func TestOptimize_NotConfigured(t *testing.T) {
	svc := NewService(nil, "gpt-4o-mini", nil)
	_, err := svc.Optimize(context.Background(), "make this prompt better", "")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestOptimize_ParsedReply(t *testing.T) {
	p := &mockProvider{content: `{"optimized": "  Better prompt.  ", "rationale": " Tightened wording. "}`}
	svc := NewService(p, "gpt-4o-mini", nil)

	result, err := svc.Optimize(context.Background(), "make this prompt better", "Succinct")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Optimized != "Better prompt." {
		t.Errorf("optimized = %q, want trimmed text", result.Optimized)
	}
	if result.Rationale != "Tightened wording." {
		t.Errorf("rationale = %q, want trimmed text", result.Rationale)
	}
	if result.Fallback {
		t.Error("parsed reply must not be flagged as fallback")
	}
	if p.calls != 1 {
		t.Errorf("expected 1 provider call, got %d", p.calls)
	}
	if !strings.Contains(p.lastReq.Messages[0].Content, "Preferred style: Succinct") {
		t.Error("style hint not forwarded to the provider")
	}
}

func TestOptimize_MissingRationaleDefaults(t *testing.T) {
	for _, content := range []string{
		`{"optimized": "Better."}`,
		`{"optimized": "Better.", "rationale": null}`,
	} {
		p := &mockProvider{content: content}
		svc := NewService(p, "gpt-4o-mini", nil)

		result, err := svc.Optimize(context.Background(), "make this prompt better", "")
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", content, err)
		}
		if result.Rationale != defaultRationale {
			t.Errorf("rationale = %q, want default for %q", result.Rationale, content)
		}
	}
}

func TestOptimize_MalformedReplyFallsBack(t *testing.T) {
	raw := "  Here is your improved prompt:\n\nDo the thing.  "
	p := &mockProvider{content: raw}
	svc := NewService(p, "gpt-4o-mini", nil)

	result, err := svc.Optimize(context.Background(), "make this prompt better", "")
	if err != nil {
		t.Fatalf("a malformed reply must not fail the operation: %v", err)
	}
	if result.Optimized != strings.TrimSpace(raw) {
		t.Errorf("optimized = %q, want trimmed raw reply", result.Optimized)
	}
	if result.Rationale != fallbackRationale {
		t.Errorf("rationale = %q, want fallback rationale", result.Rationale)
	}
	if !result.Fallback {
		t.Error("fallback flag must be set")
	}
}

func TestOptimize_ProviderFailureAfterRetries(t *testing.T) {
	fastRetries(t)

	boom := errors.New("provider unreachable")
	p := &mockProvider{err: boom}
	svc := NewService(p, "gpt-4o-mini", nil)

	_, err := svc.Optimize(context.Background(), "make this prompt better", "")
	if err == nil {
		t.Fatal("expected error after retry exhaustion")
	}
	if errors.Is(err, ErrNotConfigured) {
		t.Error("provider failure must not look like not-configured")
	}
	if !errors.Is(err, boom) {
		t.Errorf("provider error must survive wrapping, got %v", err)
	}
	if p.calls != 3 {
		t.Errorf("expected 1 attempt + 2 retries, got %d calls", p.calls)
	}
}

func TestOptimize_TransientFailureRecovers(t *testing.T) {
	fastRetries(t)

	p := &recoveringProvider{failures: 1, content: `{"optimized": "Recovered."}`}
	svc := NewService(p, "gpt-4o-mini", nil)

	result, err := svc.Optimize(context.Background(), "make this prompt better", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Optimized != "Recovered." {
		t.Errorf("optimized = %q", result.Optimized)
	}
	if p.calls != 2 {
		t.Errorf("expected 2 calls, got %d", p.calls)
	}
}

type recoveringProvider struct {
	failures int
	content  string
	calls    int
}

func (p *recoveringProvider) Name() string { return "recovering" }

func (p *recoveringProvider) ChatCompletion(context.Context, llm.ChatRequest) (*llm.ChatResponse, error) {
	p.calls++
	if p.calls <= p.failures {
		return nil, errors.New("transient")
	}
	return &llm.ChatResponse{Provider: "recovering", Content: p.content}, nil
}
