package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
)

type LLMOptions struct {
	Provider string // openai or googleai
	APIKey   string
	Model    string
}

// NewLLM builds the language model client for the configured provider
func NewLLM(ctx context.Context, o LLMOptions) (Completer, error) {
	if o.APIKey == "" {
		return nil, errors.New("no language model API key provided")
	}

	switch o.Provider {
	case "", "openai":
		model := o.Model
		if model == "" {
			model = "gpt-4o"
		}

		llm, err := openai.New(openai.WithToken(o.APIKey), openai.WithModel(model))
		if err != nil {
			return nil, err
		}

		return llm, nil
	case "googleai":
		model := o.Model
		if model == "" {
			model = "gemini-2.5-flash"
		}

		llm, err := googleai.New(ctx, googleai.WithAPIKey(o.APIKey), googleai.WithDefaultModel(model))
		if err != nil {
			return nil, err
		}

		return llm, nil
	default:
		return nil, fmt.Errorf("unsupported language model provider %q", o.Provider)
	}
}
