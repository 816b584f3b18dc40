package dictionary

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"codeberg.org/snonux/pronounceit/internal/phonetic"
)

// OpenAIDictionary asks an OpenAI chat model for ARPAbet pronunciations
type OpenAIDictionary struct {
	apiKey  string
	model   string
	client  *openai.Client
	breaker *gobreaker.CircuitBreaker
}

// NewOpenAIDictionary creates a new OpenAI-backed dictionary
func NewOpenAIDictionary(apiKey, model string) *OpenAIDictionary {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIDictionary{
		apiKey:  apiKey,
		model:   model,
		client:  openai.NewClient(apiKey),
		breaker: newBreaker(BackendOpenAI),
	}
}

// Lookup asks the model for the pronunciation of word
func (d *OpenAIDictionary) Lookup(ctx context.Context, word string) ([]phonetic.Pronunciation, error) {
	if err := d.IsAvailable(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: d.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: lookupPrompt(NormalizeWord(word)),
			},
		},
		MaxTokens:   60,
		Temperature: 0,
	}

	reply, err := d.breaker.Execute(func() (interface{}, error) {
		resp, err := d.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("OpenAI API error: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("no response from OpenAI")
		}
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	})
	if err != nil {
		return nil, err
	}

	return parseModelReply(reply.(string))
}

// Name returns the backend name
func (d *OpenAIDictionary) Name() string {
	return BackendOpenAI
}

// IsAvailable checks that an API key is configured
func (d *OpenAIDictionary) IsAvailable() error {
	if d.apiKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}
