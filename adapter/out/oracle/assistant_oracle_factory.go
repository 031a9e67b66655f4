package oracle

import (
	"fmt"

	"assistant_server/core/port/out"

	"github.com/rs/zerolog"
)

// Modes for Config.Mode.
const (
	ModeSubprocess = "subprocess"
	ModeOpenAI     = "openai"
)

// Config selects and parameterizes the oracle backend.
type Config struct {
	Mode    string // subprocess | openai
	Model   string
	BaseURL string // openai mode only
	APIKey  string // openai mode only
}

// NewOracle builds the configured OraclePort implementation.
func NewOracle(cfg Config, log zerolog.Logger) (out.OraclePort, error) {
	switch cfg.Mode {
	case ModeSubprocess, "":
		return NewOllamaAdapter(cfg.Model, log), nil
	case ModeOpenAI:
		return NewOpenAIAdapter(cfg.BaseURL, cfg.APIKey, cfg.Model, log), nil
	default:
		return nil, fmt.Errorf("unknown oracle mode %q", cfg.Mode)
	}
}
