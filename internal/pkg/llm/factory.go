package llm

import (
	"fmt"
	"strings"

	"github.com/revyse/core/internal/config"
)

// FromConfig builds the ordered provider chain from configuration.
// Disabled providers are skipped; the slice order is the fallback order.
func FromConfig(cfg config.AIConfig) ([]Provider, error) {
	providers := make([]Provider, 0, len(cfg.Providers))
	for _, pc := range cfg.Providers {
		if !pc.Enabled {
			continue
		}

		var (
			p   Provider
			err error
		)
		switch t := normalizeProviderType(pc.Type); {
		case t == "anthropic":
			p, err = NewAnthropic(pc, cfg.MaxOutputTokens)
		case t == "openai":
			p, err = NewOpenAI(pc, cfg.MaxOutputTokens)
		case t == "openrouter":
			if strings.TrimSpace(pc.Endpoint) == "" {
				pc.Endpoint = "https://openrouter.ai/api"
			}
			p, err = NewOpenAICompatible(pc, cfg.RequestTimeout, cfg.MaxOutputTokens)
		case t == "openai-compatible" || t == "openaicompatible":
			p, err = NewOpenAICompatible(pc, cfg.RequestTimeout, cfg.MaxOutputTokens)
		default:
			err = fmt.Errorf("unknown provider type %q", pc.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("provider %s: %w", pc.ID, err)
		}
		providers = append(providers, p)
	}
	return providers, nil
}

func normalizeProviderType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.ReplaceAll(t, "_", "-")
	t = strings.ReplaceAll(t, " ", "")
	return t
}
