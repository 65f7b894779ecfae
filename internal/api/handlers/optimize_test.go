package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/promptsmith/promptsmith/internal/optimize"
)

type fakeOptimizer struct {
	result *optimize.Result
	err    error
	called bool
}

func (f *fakeOptimizer) Optimize(_ context.Context, promptText, style string) (*optimize.Result, error) {
	f.called = true
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func postOptimize(h *OptimizeHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/optimize", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Optimize(rec, req)
	return rec
}

func TestOptimize_ShortPromptRejected(t *testing.T) {
	fake := &fakeOptimizer{}
	h := NewOptimizeHandler(fake)

	rec := postOptimize(h, `{"prompt": "too short"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["error"] != "Provide more context to optimize" {
		t.Errorf("error = %q", resp["error"])
	}
	if fake.called {
		t.Error("service must not be called for a rejected prompt")
	}
}

func TestOptimize_InvalidBody(t *testing.T) {
	h := NewOptimizeHandler(&fakeOptimizer{})
	rec := postOptimize(h, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestOptimize_NotConfigured(t *testing.T) {
	h := NewOptimizeHandler(&fakeOptimizer{err: optimize.ErrNotConfigured})
	rec := postOptimize(h, `{"prompt": "please rewrite this prompt for me"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not configured") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestOptimize_ProviderFailure(t *testing.T) {
	h := NewOptimizeHandler(&fakeOptimizer{err: errors.New("upstream down")})
	rec := postOptimize(h, `{"prompt": "please rewrite this prompt for me"}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestOptimize_Success(t *testing.T) {
	fake := &fakeOptimizer{result: &optimize.Result{
		Optimized: "Better prompt.",
		Rationale: "Tightened wording.",
	}}
	h := NewOptimizeHandler(fake)

	rec := postOptimize(h, `{"prompt": "please rewrite this prompt for me", "style": "Succinct"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var resp optimize.Result
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Optimized != "Better prompt." || resp.Rationale != "Tightened wording." {
		t.Errorf("unexpected payload: %+v", resp)
	}
	if resp.Fallback {
		t.Error("fallback must be omitted for parsed replies")
	}
}

func TestDiffEndpoint(t *testing.T) {
	h := NewDiffHandler()
	body := `{"before": "a\nb\n", "after": "a\nc\n"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/diff", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Diff(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Segments []struct {
			Text string `json:"text"`
			Kind string `json:"kind"`
		} `json:"segments"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Segments) == 0 {
		t.Fatal("expected diff segments")
	}
	kinds := map[string]bool{}
	for _, s := range resp.Segments {
		kinds[s.Kind] = true
	}
	for _, want := range []string{"unchanged", "removed", "added"} {
		if !kinds[want] {
			t.Errorf("missing %q segment in %+v", want, resp.Segments)
		}
	}
}
