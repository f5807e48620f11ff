package llm

import (
	"fmt"

	"NewsletterCurator/internal/config"
	"NewsletterCurator/internal/ports"
)

// New picks the client for cfg.Provider.
func New(cfg config.LLMConfig) (ports.Completer, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		return NewChatGPTClient(cfg), nil
	case config.ProviderGemini:
		return NewGeminiClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
