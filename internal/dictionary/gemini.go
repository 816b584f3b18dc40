package dictionary

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sony/gobreaker"
	"google.golang.org/genai"

	"codeberg.org/snonux/pronounceit/internal/phonetic"
)

// GeminiDictionary asks a Gemini model for ARPAbet pronunciations
type GeminiDictionary struct {
	apiKey  string
	model   string
	breaker *gobreaker.CircuitBreaker

	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiDictionary creates a new Gemini-backed dictionary. The API client
// is created on first use.
func NewGeminiDictionary(apiKey, model string) *GeminiDictionary {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiDictionary{
		apiKey:  apiKey,
		model:   model,
		breaker: newBreaker(BackendGemini),
	}
}

// Lookup asks the model for the pronunciation of word
func (d *GeminiDictionary) Lookup(ctx context.Context, word string) ([]phonetic.Pronunciation, error) {
	if err := d.IsAvailable(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	client, err := d.getClient(ctx)
	if err != nil {
		return nil, err
	}

	prompt := systemPrompt + "\n\n" + lookupPrompt(NormalizeWord(word))

	reply, err := d.breaker.Execute(func() (interface{}, error) {
		result, err := client.Models.GenerateContent(ctx, d.model, genai.Text(prompt), nil)
		if err != nil {
			return nil, fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text.WriteString(part.Text)
				}
			}
			return text.String(), nil
		}

		return nil, fmt.Errorf("empty response from Gemini")
	})
	if err != nil {
		return nil, err
	}

	return parseModelReply(reply.(string))
}

func (d *GeminiDictionary) getClient(ctx context.Context) (*genai.Client, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.client != nil {
		return d.client, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  d.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	d.client = client
	return client, nil
}

// Name returns the backend name
func (d *GeminiDictionary) Name() string {
	return BackendGemini
}

// IsAvailable checks that an API key is configured
func (d *GeminiDictionary) IsAvailable() error {
	if d.apiKey == "" {
		return fmt.Errorf("Gemini API key not configured")
	}
	return nil
}
