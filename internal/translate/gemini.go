package translate

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type geminiProvider struct {
	client      *genai.Client
	model       string
	temperature float32
}

func newGemini(ctx context.Context, s settings) (*geminiProvider, error) {
	opts := []option.ClientOption{option.WithAPIKey(s.apiKey)}
	if s.baseURL != "" {
		opts = append(opts, option.WithEndpoint(s.baseURL))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, &ProviderError{Provider: "gemini", Model: s.model, Err: err}
	}
	return &geminiProvider{client: client, model: s.model, temperature: float32(s.temperature)}, nil
}

func (p *geminiProvider) Name() string  { return "gemini" }
func (p *geminiProvider) Model() string { return p.model }

// Complete sends the system message as the model's system instruction. A
// model handle is created per call so concurrent calls share no state.
func (p *geminiProvider) Complete(ctx context.Context, system, user string) (string, error) {
	m := p.client.GenerativeModel(p.model)
	m.SetTemperature(p.temperature)
	m.SystemInstruction = genai.NewUserContent(genai.Text(system))
	resp, err := m.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		break
	}
	if b.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}

// Close releases the client's connections.
func (p *geminiProvider) Close() error {
	return p.client.Close()
}
