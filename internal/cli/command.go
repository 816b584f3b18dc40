package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/pronounceit/internal"
	"codeberg.org/snonux/pronounceit/internal/dictionary"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pronounceit [words...]",
		Short: "English Phonetic Respelling Generator",
		Long: `pronounceit looks up English words in the CMU Pronouncing Dictionary and
turns their ARPAbet pronunciations into readable phonetic respellings.

Words are separated by commas and/or newlines; several arguments are joined
with commas.

Examples:
  pronounceit hello                      # h-uh-l-oh
  pronounceit "cat, dog, fun"            # several words at once
  pronounceit --raw hello                # HH AH0 L OW1
  pronounceit --batch words.csv --save   # CSV with a Word column, save table
  pronounceit --batch words.txt --watch  # re-run whenever words.txt changes
  pronounceit --import                   # index the CMU dictionary in SQLite`,
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.pronounceit.yaml)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format: text or json")

	// Local flags
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Process words from file (word list, or CSV with a 'Word' column)")
	cmd.Flags().BoolVar(&flags.Raw, "raw", false, "Show raw ARPAbet pronunciations instead of respellings")
	cmd.Flags().StringVar(&flags.OutputDir, "output-dir", flags.OutputDir, "Directory for saved tables and decks")
	cmd.Flags().StringVarP(&flags.OutputFile, "output", "o", "", "Save the table to this file (relative names go to --output-dir)")
	cmd.Flags().BoolVar(&flags.Save, "save", false, "Save the table under its default name in --output-dir")
	cmd.Flags().IntVarP(&flags.Workers, "workers", "w", flags.Workers, "Number of concurrent dictionary lookups")
	cmd.Flags().BoolVar(&flags.Watch, "watch", false, "Re-run whenever the --batch file changes")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move --output-dir to archive/reports-<timestamp> and exit")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List OpenAI chat models for the current API key")

	// Anki flags
	cmd.Flags().BoolVar(&flags.GenerateAnki, "anki", false, "Generate Anki import file (APKG format by default, use --anki-csv for CSV)")
	cmd.Flags().BoolVar(&flags.AnkiCSV, "anki-csv", false, "Generate CSV format instead of APKG when using --anki")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name for APKG export")

	// Dictionary flags
	cmd.Flags().StringVarP(&flags.Dictionary, "dictionary", "d", flags.Dictionary, "Dictionary backend: cmudict, sqlite, openai, gemini")
	cmd.Flags().StringVar(&flags.Fallback, "fallback", "", "Backend to ask when the dictionary backend fails")
	cmd.Flags().StringVar(&flags.CMUDictPath, "cmudict", flags.CMUDictPath, "Path to the CMU dictionary file")
	cmd.Flags().StringVar(&flags.DBPath, "db", flags.DBPath, "Path to the SQLite dictionary index")
	cmd.Flags().IntVar(&flags.CacheSize, "cache-size", flags.CacheSize, "Number of lookups kept in memory (0 disables the cache)")
	cmd.Flags().BoolVar(&flags.ImportDict, "import", false, "Import --cmudict into the SQLite index at --db and exit")

	// LLM dictionary flags
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI chat model for the openai dictionary")
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model for the gemini dictionary")

	bindFlagsToViper(cmd)
}

// flagBindings maps viper keys to flag names
var flagBindings = map[string]string{
	"dictionary.backend":      "dictionary",
	"dictionary.fallback":     "fallback",
	"dictionary.cmudict_path": "cmudict",
	"dictionary.db_path":      "db",
	"dictionary.cache_size":   "cache-size",
	"openai.model":            "openai-model",
	"gemini.model":            "gemini-model",
	"processing.workers":      "workers",
	"output.directory":        "output-dir",
	"output.file":             "output",
	"output.raw":              "raw",
	"anki.deck_name":          "deck-name",
}

var persistentFlagBindings = map[string]string{
	"log.level":  "log-level",
	"log.format": "log-format",
}

func bindFlagsToViper(cmd *cobra.Command) {
	for key, name := range flagBindings {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			viper.BindPFlag(key, flag)
		}
	}
	for key, name := range persistentFlagBindings {
		if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
			viper.BindPFlag(key, flag)
		}
	}
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".pronounceit" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pronounceit")
	}

	// PRONOUNCEIT_DICTIONARY_BACKEND overrides dictionary.backend
	viper.SetEnvPrefix("PRONOUNCEIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// ApplyConfig copies configured values into flags. Flags set on the command
// line win over the config file and the environment.
func ApplyConfig(flags *Flags) {
	flags.Dictionary = viper.GetString("dictionary.backend")
	flags.Fallback = viper.GetString("dictionary.fallback")
	flags.CMUDictPath = viper.GetString("dictionary.cmudict_path")
	flags.DBPath = viper.GetString("dictionary.db_path")
	flags.CacheSize = viper.GetInt("dictionary.cache_size")
	flags.OpenAIModel = viper.GetString("openai.model")
	flags.GeminiModel = viper.GetString("gemini.model")
	flags.Workers = viper.GetInt("processing.workers")
	flags.OutputDir = viper.GetString("output.directory")
	flags.OutputFile = viper.GetString("output.file")
	flags.Raw = viper.GetBool("output.raw")
	flags.DeckName = viper.GetString("anki.deck_name")
	flags.LogLevel = viper.GetString("log.level")
	flags.LogFormat = viper.GetString("log.format")
}

// DictionaryConfig builds the dictionary configuration from flags and the
// API keys found in the environment or config file.
func DictionaryConfig(flags *Flags) *dictionary.Config {
	return &dictionary.Config{
		Backend:     flags.Dictionary,
		Fallback:    flags.Fallback,
		CMUDictPath: flags.CMUDictPath,
		DBPath:      flags.DBPath,
		CacheSize:   flags.CacheSize,
		OpenAIKey:   GetOpenAIKey(),
		OpenAIModel: flags.OpenAIModel,
		GeminiKey:   GetGeminiKey(),
		GeminiModel: flags.GeminiModel,
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	return viper.GetString("openai.key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}

	return viper.GetString("gemini.key")
}
