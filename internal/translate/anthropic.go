package translate

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	anoption "github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicMaxTokens = 512

type anthropicProvider struct {
	client      anthropic.Client
	model       string
	temperature float64
}

func newAnthropic(s settings) *anthropicProvider {
	opts := []anoption.RequestOption{anoption.WithAPIKey(s.apiKey)}
	if s.baseURL != "" {
		opts = append(opts, anoption.WithBaseURL(withSlash(s.baseURL)))
	}
	return &anthropicProvider{
		client:      anthropic.NewClient(opts...),
		model:       s.model,
		temperature: s.temperature,
	}
}

func (p *anthropicProvider) Name() string  { return "anthropic" }
func (p *anthropicProvider) Model() string { return p.model }

func (p *anthropicProvider) Complete(ctx context.Context, system, user string) (string, error) {
	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: anthropicMaxTokens,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
		Temperature: anthropic.Float(p.temperature),
	})
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}
