// Package optimize rewrites prompts through an external text-generation
// provider: build a deterministic payload, call through the retry wrapper,
// then parse the structured reply with a raw-text fallback.
package optimize

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/promptsmith/promptsmith/internal/cache"
	"github.com/promptsmith/promptsmith/internal/llm"
	"github.com/promptsmith/promptsmith/internal/retry"
)

// ErrNotConfigured signals that no provider credential was supplied. This is
// an expected deployment state, not a provider failure.
var ErrNotConfigured = errors.New("optimization provider not configured")

const (
	defaultRationale  = "Improved for clarity and completeness."
	fallbackRationale = "Optimized using fallback parser."

	maxRetries = 2
	cacheTTL   = 24 * time.Hour
)

// Variable so tests can shrink the backoff.
var initialDelay = 800 * time.Millisecond

// Result is the outcome of one optimization call. Fallback marks replies
// the provider did not return as valid JSON; the raw text is still served
// so a malformed reply never blocks the user.
type Result struct {
	Optimized string `json:"optimized"`
	Rationale string `json:"rationale"`
	Fallback  bool   `json:"fallback,omitempty"`
}

type Service struct {
	provider llm.Provider
	model    string
	cache    *cache.Cache
}

// NewService wires the client. provider may be nil when no credential is
// configured; cache may be nil when Redis is not deployed.
func NewService(provider llm.Provider, model string, c *cache.Cache) *Service {
	return &Service{provider: provider, model: model, cache: c}
}

// Optimize rewrites promptText, optionally steered by a style hint.
func (s *Service) Optimize(ctx context.Context, promptText, style string) (*Result, error) {
	if s.provider == nil {
		return nil, ErrNotConfigured
	}

	key := cacheKey(promptText, style)
	var cached Result
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	req := BuildRequest(promptText, style, s.model)
	resp, err := retry.Do(ctx, func(ctx context.Context) (*llm.ChatResponse, error) {
		return s.provider.ChatCompletion(ctx, req)
	}, maxRetries, initialDelay)
	if err != nil {
		return nil, fmt.Errorf("optimize via %s: %w", s.provider.Name(), err)
	}

	result := parseReply(resp.Content)

	if err := s.cache.Set(ctx, key, result, cacheTTL); err != nil {
		slog.Warn("failed to cache optimization result", "error", err)
	}
	return result, nil
}

// parseReply interprets the raw provider text. Valid JSON with an
// "optimized" field yields a parsed result; anything else degrades to the
// trimmed raw text rather than failing the operation.
func parseReply(raw string) *Result {
	var parsed struct {
		Optimized string  `json:"optimized"`
		Rationale *string `json:"rationale"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return &Result{
			Optimized: strings.TrimSpace(raw),
			Rationale: fallbackRationale,
			Fallback:  true,
		}
	}

	rationale := defaultRationale
	if parsed.Rationale != nil {
		rationale = strings.TrimSpace(*parsed.Rationale)
	}
	return &Result{
		Optimized: strings.TrimSpace(parsed.Optimized),
		Rationale: rationale,
	}
}

func cacheKey(promptText, style string) string {
	h := sha256.Sum256([]byte(promptText + "\x00" + style))
	return "optimize:" + hex.EncodeToString(h[:])
}
