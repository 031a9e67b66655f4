// Package suggestion rewrites raw email drafts into polished prose via the
// language-model oracle.
package suggestion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"assistant_server/core/port/out"
	"assistant_server/pkg/cache"
	"assistant_server/pkg/logger"
	"assistant_server/pkg/resilience"
)

const rewritePromptTemplate = `You are an assistant that rewrites the user's email in a friendly, professional, natural tone.

FORMAT RULES:
- Start with a natural greeting and end with a warm, professional sign-off.
- Use short, conversational sentences with one blank line between paragraphs.
- Preserve all details from the original message (names, dates, times, context).
- Do NOT add explanations, markdown, or quotes.
- Output ONLY the rewritten email body exactly as it should appear in an email editor.

Original email:
"""%s"""

Rewritten email:`

// Service produces rewritten drafts. A Redis cache in front of the oracle is
// optional; when absent every call goes to the model.
type Service struct {
	oracle  out.OraclePort
	cache   *cache.SuggestionCache
	breaker *resilience.Breaker
	timeout time.Duration
	log     *logger.Logger
}

func NewService(oracle out.OraclePort, suggestions *cache.SuggestionCache, breaker *resilience.Breaker, timeout time.Duration) *Service {
	return &Service{
		oracle:  oracle,
		cache:   suggestions,
		breaker: breaker,
		timeout: timeout,
		log:     logger.Default().WithField("component", "suggestion-service"),
	}
}

// GenerateSuggestion returns a rewritten version of draft. The original
// draft is returned whenever the model fails or produces nothing, so the
// caller always gets usable text back.
func (s *Service) GenerateSuggestion(ctx context.Context, draft string) (string, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, draft); ok {
			return cached, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := fmt.Sprintf(rewritePromptTemplate, draft)
	raw, err := resilience.Execute(s.breaker, func() (string, error) {
		return s.oracle.Complete(ctx, prompt)
	})
	if err != nil {
		s.log.WithError(err).Warn("draft rewrite failed, returning original")
		return draft, nil
	}

	suggestion := stripWrappingQuotes(strings.TrimSpace(raw))
	if suggestion == "" {
		return draft, nil
	}

	if s.cache != nil {
		s.cache.Set(ctx, draft, suggestion)
	}
	return suggestion, nil
}

// stripWrappingQuotes removes a single pair of enclosing quotes some models
// add despite instructions.
func stripWrappingQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}
