package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDo_SucceedsFirstTry(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), func(context.Context) (string, error) {
		calls++
		return "ok", nil
	}, 2, time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("got %q, want ok", got)
	}
	if calls != 1 {
		t.Errorf("success must not be retried: %d calls", calls)
	}
}

func TestDo_RetriesThenSucceeds(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("transient")
		}
		return "success", nil
	}, 2, time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "success" {
		t.Errorf("got %q, want success", got)
	}
	if calls != 2 {
		t.Errorf("expected exactly 2 invocations, got %d", calls)
	}
}

func TestDo_ZeroRetriesSingleAttempt(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	start := time.Now()
	_, err := Do(context.Background(), func(context.Context) (int, error) {
		calls++
		return 0, boom
	}, 0, time.Hour)
	if calls != 1 {
		t.Errorf("maxRetries=0 means one attempt, got %d", calls)
	}
	if !errors.Is(err, boom) {
		t.Errorf("error must propagate unchanged, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("maxRetries=0 must not wait")
	}
}

func TestDo_ExhaustionPropagatesLastError(t *testing.T) {
	first := errors.New("first")
	last := errors.New("last")
	calls := 0
	_, err := Do(context.Background(), func(context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, first
		}
		return 0, last
	}, 2, time.Millisecond)
	if calls != 3 {
		t.Errorf("expected 3 invocations (1 + 2 retries), got %d", calls)
	}
	if !errors.Is(err, last) {
		t.Errorf("expected last error, got %v", err)
	}
	if errors.Is(err, first) {
		t.Errorf("earlier errors must not be wrapped in, got %v", err)
	}
}
