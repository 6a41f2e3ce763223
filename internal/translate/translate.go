package translate

import (
	"context"
	"fmt"
	"strings"
)

// Request is one word to translate.
type Request struct {
	Korean      string
	Description string
}

// Result is a parsed translation.
type Result struct {
	English string
	Key     string
	Arabic  string
}

// Provider sends a single-turn chat to an LLM and returns the reply text.
type Provider interface {
	// Name returns the provider name, e.g. "openai".
	Name() string
	// Model returns the model requests are sent to.
	Model() string
	// Complete sends the system and user messages.
	Complete(ctx context.Context, system, user string) (string, error)
}

// KeyFunc derives an English key from a translation when the model did
// not supply a usable one.
type KeyFunc func(english, korean string) (string, error)

// Option configures a Translator.
type Option func(*Translator)

// WithKeyFunc replaces the default SnakeKey derivation.
func WithKeyFunc(fn KeyFunc) Option {
	return func(t *Translator) {
		t.keyFunc = fn
	}
}

// Translator translates single words through a Provider.
type Translator struct {
	provider Provider
	keyFunc  KeyFunc
}

// New creates a Translator.
func New(p Provider, opts ...Option) *Translator {
	t := &Translator{provider: p}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Provider returns the underlying provider.
func (t *Translator) Provider() Provider {
	return t.provider
}

// Translate translates req. The returned key is always snake_case.
func (t *Translator) Translate(ctx context.Context, req Request) (Result, error) {
	req.Korean = strings.TrimSpace(req.Korean)
	if req.Korean == "" {
		return Result{}, ErrEmptySource
	}

	reply, err := t.provider.Complete(ctx, systemPrompt, Prompt(req))
	if err != nil {
		return Result{}, &ProviderError{Provider: t.provider.Name(), Model: t.provider.Model(), Err: err}
	}
	res := Parse(reply)
	if res.English == "" && res.Arabic == "" {
		return Result{}, &ProviderError{Provider: t.provider.Name(), Model: t.provider.Model(), Err: ErrEmptyResponse}
	}

	res.Key = SnakeKey(res.Key)
	if res.Key == "" && t.keyFunc != nil {
		key, err := t.keyFunc(res.English, req.Korean)
		if err != nil {
			return Result{}, fmt.Errorf("deriving key for %q: %w", req.Korean, err)
		}
		res.Key = SnakeKey(key)
	}
	if res.Key == "" {
		res.Key = SnakeKey(res.English)
	}
	return res, nil
}
