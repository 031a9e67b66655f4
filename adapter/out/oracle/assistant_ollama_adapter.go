// Package oracle provides language-model adapters implementing OraclePort.
package oracle

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// OllamaAdapter runs prompts through a local "ollama run" subprocess, one
// process per completion. The prompt goes to stdin and the answer comes
// back on stdout.
type OllamaAdapter struct {
	model string
	log   zerolog.Logger
}

// NewOllamaAdapter creates a subprocess-backed adapter for the given model tag.
func NewOllamaAdapter(model string, log zerolog.Logger) *OllamaAdapter {
	return &OllamaAdapter{
		model: model,
		log:   log.With().Str("component", "ollama_adapter").Str("model", model).Logger(),
	}
}

// Complete runs the model until it exits or ctx expires. Process lifetime is
// bounded by ctx; callers set the deadline.
func (a *OllamaAdapter) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, "ollama", "run", a.model)
	cmd.Stdin = strings.NewReader(prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("ollama run %s: %w", a.model, ctx.Err())
		}
		return "", fmt.Errorf("ollama run %s: %w: %s", a.model, err, strings.TrimSpace(stderr.String()))
	}

	output := strings.TrimSpace(stdout.String())
	if output == "" {
		a.log.Warn().
			Str("stderr", strings.TrimSpace(stderr.String())).
			Dur("elapsed", time.Since(start)).
			Msg("model produced no output")
		return "", nil
	}

	a.log.Debug().
		Int("prompt_len", len(prompt)).
		Int("output_len", len(output)).
		Dur("elapsed", time.Since(start)).
		Msg("completion finished")
	return output, nil
}
