package cli

import (
	"os"
	"path/filepath"

	"codeberg.org/snonux/pronounceit/internal/dictionary"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	BatchFile  string
	OutputDir  string
	OutputFile string
	Save       bool
	Raw        bool
	Workers    int
	Watch      bool
	Archive    bool
	ListModels bool

	// Anki flags
	GenerateAnki bool
	AnkiCSV      bool
	DeckName     string

	// Dictionary flags
	Dictionary  string
	Fallback    string
	CMUDictPath string
	DBPath      string
	CacheSize   int
	ImportDict  bool

	// LLM dictionary flags
	OpenAIModel string
	GeminiModel string

	// Logging flags
	LogLevel  string
	LogFormat string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	dict := dictionary.DefaultConfig()
	return &Flags{
		OutputDir:   DefaultOutputDir(),
		Workers:     4,
		DeckName:    "English Pronunciation",
		Dictionary:  dict.Backend,
		CMUDictPath: dict.CMUDictPath,
		DBPath:      dict.DBPath,
		CacheSize:   dict.CacheSize,
		OpenAIModel: dict.OpenAIModel,
		GeminiModel: dict.GeminiModel,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// DefaultOutputDir returns ~/.local/state/pronounceit/reports
func DefaultOutputDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "pronounceit", "reports")
}
