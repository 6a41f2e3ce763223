// Package translate turns a Korean source word into its English text,
// English key and Arabic text through an LLM provider.
//
// A Provider sends one system and one user message and returns the reply
// text. The Translator builds the prompt, parses the reply by line prefix
// and derives a snake_case key when the model leaves it out. Bulk runs a
// Translator over every unverified row of a dictionary with bounded
// concurrency.
//
// Supported providers are OpenAI, Anthropic and Gemini:
//
//	p, err := translate.NewProvider(cfg.Translate)
//	if err != nil {
//	    return err
//	}
//	t := translate.New(p)
//	res, err := t.Translate(ctx, translate.Request{Korean: "사과"})
package translate
