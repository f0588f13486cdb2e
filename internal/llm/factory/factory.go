// internal/llm/factory/factory.go
package factory

import (
	"fmt"

	"github.com/condorlabs/condor/internal/config"
	"github.com/condorlabs/condor/internal/llm"
	"github.com/condorlabs/condor/internal/llm/claude"
	"github.com/condorlabs/condor/internal/llm/openai"
)

// New creates an LLM provider based on configuration.
func New(cfg config.LLMConfig) (llm.Provider, error) {
	switch cfg.Provider {
	case "claude":
		return claude.New(cfg.Claude.APIKey, cfg.Claude.Model)
	case "openai":
		return openai.New(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.Provider)
	}
}
