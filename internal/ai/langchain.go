package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// LangChainGenerator: herhangi bir langchaingo modelini JSON modunda çalıştırır
type LangChainGenerator struct {
	model llms.Model
}

func NewLangChainGenerator(model llms.Model) *LangChainGenerator {
	return &LangChainGenerator{model: model}
}

// NewOpenAIGenerator: AI_PROVIDER=openai
func NewOpenAIGenerator(apiKey, model string) (*LangChainGenerator, error) {
	llm, err := openai.New(openai.WithToken(apiKey), openai.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("openai istemcisi oluşturulamadı: %w", err)
	}
	return NewLangChainGenerator(llm), nil
}

func (g *LangChainGenerator) Generate(ctx context.Context, r Request) (string, error) {
	prompt := r.Prompt
	if len(r.Schema) > 0 {
		// JSON modunda şema API'ye gitmez, prompt'a eklenir
		schema, err := json.Marshal(r.Schema)
		if err == nil {
			prompt += "\n\nRespond only with a JSON object matching this schema:\n" + string(schema)
		}
	}

	out, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt,
		llms.WithJSONMode(),
		llms.WithTemperature(0.4),
	)
	if err != nil {
		return "", err
	}
	if out == "" {
		return "", ErrEmptyResponse
	}

	output := extractJSON(out)
	if !json.Valid([]byte(output)) {
		return "", ErrNonJSON
	}
	return output, nil
}
