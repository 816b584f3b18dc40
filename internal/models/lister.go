package models

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ErrNoAPIKey is returned when no OpenAI API key is configured
var ErrNoAPIKey = errors.New("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure openai.key in .pronounceit.yaml")

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// ListAvailableModels prints the chat models usable by the openai dictionary
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	if l.apiKey == "" {
		return ErrNoAPIKey
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	ids := make([]string, 0, len(models.Models))
	for _, model := range models.Models {
		ids = append(ids, model.ID)
	}

	printModels(w, ChatModels(ids))
	return nil
}

// ChatModels filters model IDs down to sorted chat completion models.
// Speech, transcription, image, embedding and moderation models are dropped.
func ChatModels(ids []string) []string {
	var chat []string
	for _, id := range ids {
		if !strings.Contains(id, "gpt") && !strings.HasPrefix(id, "o") {
			continue
		}
		if isNonChatModel(id) {
			continue
		}
		chat = append(chat, id)
	}
	sort.Strings(chat)
	return chat
}

func isNonChatModel(id string) bool {
	for _, marker := range []string{"tts", "audio", "transcribe", "realtime", "image", "dall-e", "embedding", "moderation", "whisper", "search"} {
		if strings.Contains(id, marker) {
			return true
		}
	}
	return false
}

func printModels(w io.Writer, chatModels []string) {
	fmt.Fprintln(w, "Available OpenAI Models:")
	fmt.Fprintln(w, "\nChat Models (for --dictionary openai --openai-model):")
	if len(chatModels) == 0 {
		fmt.Fprintln(w, "  No chat models found")
		return
	}
	for _, model := range chatModels {
		fmt.Fprintf(w, "  %s\n", model)
	}
}
