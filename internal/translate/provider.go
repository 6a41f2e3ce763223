package translate

import (
	"context"
	"fmt"

	"github.com/dshills/trilex/internal/config"
)

// Default models per provider.
const (
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-3-5-haiku-latest"
	DefaultGeminiModel    = "gemini-1.5-flash"
)

// DefaultModel returns the model used when none is configured.
func DefaultModel(provider string) string {
	switch provider {
	case config.ProviderAnthropic:
		return DefaultAnthropicModel
	case config.ProviderGemini:
		return DefaultGeminiModel
	default:
		return DefaultOpenAIModel
	}
}

// settings is the provider-independent part of the configuration.
type settings struct {
	apiKey      string
	model       string
	baseURL     string
	temperature float64
}

func settingsFrom(cfg config.TranslateConfig) settings {
	s := settings{
		apiKey:      cfg.APIKey(),
		model:       cfg.Model,
		baseURL:     cfg.BaseURL,
		temperature: cfg.Temperature,
	}
	if s.model == "" {
		s.model = DefaultModel(cfg.Provider)
	}
	return s
}

// NewProvider creates the provider named in cfg.
func NewProvider(ctx context.Context, cfg config.TranslateConfig) (Provider, error) {
	s := settingsFrom(cfg)
	if s.apiKey == "" {
		return nil, &ProviderError{Provider: cfg.Provider, Err: ErrNoAPIKey}
	}
	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		return newOpenAI(s), nil
	case config.ProviderAnthropic:
		return newAnthropic(s), nil
	case config.ProviderGemini:
		return newGemini(ctx, s)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
}

// ModelName returns the model cfg resolves to without creating a client.
func ModelName(cfg config.TranslateConfig) string {
	return settingsFrom(cfg).model
}
