package dictionary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"codeberg.org/snonux/pronounceit/internal/phonetic"
)

// Backend names accepted by New
const (
	BackendCMUDict = "cmudict"
	BackendSQLite  = "sqlite"
	BackendOpenAI  = "openai"
	BackendGemini  = "gemini"
)

// ErrUnknownBackend is returned by New for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown dictionary backend")

// Dictionary looks up the pronunciations of a word
type Dictionary interface {
	// Lookup returns the pronunciations of word in dictionary order. An
	// empty result means the word is not in the dictionary; an error means
	// the backend itself failed.
	Lookup(ctx context.Context, word string) ([]phonetic.Pronunciation, error)

	// Name returns the backend name
	Name() string

	// IsAvailable checks if the backend is properly configured and usable
	IsAvailable() error
}

// Config selects and configures a dictionary backend
type Config struct {
	Backend  string // cmudict, sqlite, openai or gemini
	Fallback string // optional backend used when Backend fails

	CMUDictPath string
	DBPath      string
	CacheSize   int // 0 disables the LRU cache

	OpenAIKey   string
	OpenAIModel string

	GeminiKey   string
	GeminiModel string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	dataDir := DefaultDataDir()
	return &Config{
		Backend:     BackendCMUDict,
		CMUDictPath: filepath.Join(dataDir, "cmudict.dict"),
		DBPath:      filepath.Join(dataDir, "cmudict.sqlite"),
		CacheSize:   4096,
		OpenAIModel: "gpt-4o-mini",
		GeminiModel: "gemini-2.5-flash",
	}
}

// DefaultDataDir returns the directory holding dictionary files,
// ~/.local/share/pronounceit.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "pronounceit")
}

// New creates the configured dictionary, optionally wrapped with a fallback
// backend and an LRU cache.
func New(ctx context.Context, cfg *Config) (Dictionary, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	dict, err := newBackend(ctx, cfg.Backend, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Fallback != "" && cfg.Fallback != cfg.Backend {
		fallback, err := newBackend(ctx, cfg.Fallback, cfg)
		if err != nil {
			_ = Close(dict)
			return nil, fmt.Errorf("fallback dictionary: %w", err)
		}
		dict = WithFallback(dict, fallback)
	}

	if cfg.CacheSize > 0 {
		cached, err := NewCached(dict, cfg.CacheSize)
		if err != nil {
			_ = Close(dict)
			return nil, err
		}
		dict = cached
	}

	return dict, nil
}

func newBackend(ctx context.Context, name string, cfg *Config) (Dictionary, error) {
	switch name {
	case BackendCMUDict, "":
		return Load(cfg.CMUDictPath)

	case BackendSQLite:
		return OpenStore(ctx, cfg.DBPath)

	case BackendOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required for the %s dictionary", BackendOpenAI)
		}
		return NewOpenAIDictionary(cfg.OpenAIKey, cfg.OpenAIModel), nil

	case BackendGemini:
		if cfg.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required for the %s dictionary", BackendGemini)
		}
		return NewGeminiDictionary(cfg.GeminiKey, cfg.GeminiModel), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, name)
	}
}

// Close releases resources held by d, if any.
func Close(d Dictionary) error {
	if closer, ok := d.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// fallbackDictionary wraps a primary dictionary with a fallback option
type fallbackDictionary struct {
	primary  Dictionary
	fallback Dictionary
}

// WithFallback creates a dictionary that asks fallback when primary fails.
// A miss in primary is final and is not retried in fallback.
func WithFallback(primary, fallback Dictionary) Dictionary {
	return &fallbackDictionary{
		primary:  primary,
		fallback: fallback,
	}
}

// Lookup tries the primary dictionary first, falls back to secondary on error
func (d *fallbackDictionary) Lookup(ctx context.Context, word string) ([]phonetic.Pronunciation, error) {
	prons, err := d.primary.Lookup(ctx, word)
	if err == nil {
		return prons, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	slog.WarnContext(ctx, "primary dictionary failed, falling back",
		slog.String("primary", d.primary.Name()),
		slog.String("fallback", d.fallback.Name()),
		slog.String("word", word),
		slog.String("error", err.Error()))

	return d.fallback.Lookup(ctx, word)
}

// Name returns the dictionary name
func (d *fallbackDictionary) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", d.primary.Name(), d.fallback.Name())
}

// IsAvailable checks if at least one dictionary is available
func (d *fallbackDictionary) IsAvailable() error {
	primaryErr := d.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := d.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both dictionaries unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}

// Close closes both wrapped dictionaries
func (d *fallbackDictionary) Close() error {
	return errors.Join(Close(d.primary), Close(d.fallback))
}

func clonePronunciations(prons []phonetic.Pronunciation) []phonetic.Pronunciation {
	if len(prons) == 0 {
		return nil
	}
	out := make([]phonetic.Pronunciation, len(prons))
	for i, p := range prons {
		out[i] = append(phonetic.Pronunciation(nil), p...)
	}
	return out
}
