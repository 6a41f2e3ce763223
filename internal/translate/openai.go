package translate

import (
	"context"
	"strings"

	"github.com/openai/openai-go"
	oaoption "github.com/openai/openai-go/option"
)

type openAIProvider struct {
	client      openai.Client
	model       string
	temperature float64
}

func newOpenAI(s settings) *openAIProvider {
	opts := []oaoption.RequestOption{oaoption.WithAPIKey(s.apiKey)}
	if s.baseURL != "" {
		opts = append(opts, oaoption.WithBaseURL(withSlash(s.baseURL)))
	}
	return &openAIProvider{
		client:      openai.NewClient(opts...),
		model:       s.model,
		temperature: s.temperature,
	}
}

func (p *openAIProvider) Name() string  { return "openai" }
func (p *openAIProvider) Model() string { return p.model }

func (p *openAIProvider) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(p.temperature),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func withSlash(u string) string {
	if strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}
