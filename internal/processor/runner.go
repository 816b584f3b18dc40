package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"codeberg.org/snonux/pronounceit/internal/anki"
	"codeberg.org/snonux/pronounceit/internal/batch"
	"codeberg.org/snonux/pronounceit/internal/cli"
	"codeberg.org/snonux/pronounceit/internal/phonetic"
	"codeberg.org/snonux/pronounceit/internal/report"
)

// ErrNoCards is returned when a deck would contain no cards
var ErrNoCards = errors.New("no pronunciations found, nothing to put in the deck")

// Runner drives one command invocation: it processes the words, prints the
// table and summary, and writes the requested files.
type Runner struct {
	flags *cli.Flags
	proc  *Processor
	out   io.Writer
}

// NewRunner creates a runner printing to out
func NewRunner(flags *cli.Flags, proc *Processor, out io.Writer) *Runner {
	return &Runner{flags: flags, proc: proc, out: out}
}

// RunBatch reads the batch file and runs its words
func (r *Runner) RunBatch(ctx context.Context) (*report.Table, error) {
	words, err := batch.ReadBatchFile(r.flags.BatchFile)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, words)
}

// Run processes words and produces all requested output
func (r *Runner) Run(ctx context.Context, words []string) (*report.Table, error) {
	table, err := r.proc.Process(ctx, words)
	if err != nil {
		return nil, err
	}

	if err := table.Render(r.out); err != nil {
		return nil, fmt.Errorf("failed to render table: %w", err)
	}

	if len(words) > 1 || r.flags.BatchFile != "" {
		Summarize(table).Print(r.out)
	}

	if path := r.OutputPath(); path != "" {
		if err := table.WriteFile(path); err != nil {
			return nil, err
		}
		fmt.Fprintf(r.out, "\nTable saved to: %s\n", path)
	}

	if r.flags.GenerateAnki {
		fmt.Fprintf(r.out, "\nGenerating Anki import file...\n")
		path, err := r.GenerateAnkiFile(table)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to generate Anki file: %v\n", err)
		} else {
			fmt.Fprintf(r.out, "Anki file created: %s\n", path)
		}
	}

	return table, nil
}

// OutputPath returns where the table is saved, or "" when it is not.
// Relative --output names are placed in the output directory.
func (r *Runner) OutputPath() string {
	name := r.flags.OutputFile
	if name == "" {
		if !r.flags.Save {
			return ""
		}
		name = r.proc.Mode().DefaultFileName()
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(r.flags.OutputDir, name)
}

// GenerateAnkiFile writes the found words of table as an APKG deck, or as
// CSV with --anki-csv, into the output directory.
func (r *Runner) GenerateAnkiFile(table *report.Table) (string, error) {
	transcriber := r.proc.Transcriber()
	respell := func(pronunciation string) string {
		return transcriber.Transcribe(phonetic.ParsePronunciation(pronunciation))
	}

	if err := os.MkdirAll(r.flags.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	if r.flags.AnkiCSV {
		outputPath := filepath.Join(r.flags.OutputDir, "anki_import.csv")
		gen := anki.NewGenerator(&anki.GeneratorOptions{
			OutputPath:     outputPath,
			IncludeHeaders: true,
		})
		if gen.AddTable(table, respell) == 0 {
			return "", ErrNoCards
		}
		if err := gen.GenerateCSV(); err != nil {
			return "", err
		}
		total, _ := gen.Stats()
		fmt.Fprintf(r.out, "  Generated %d cards\n", total)
		return outputPath, nil
	}

	gen := anki.NewGenerator(nil)
	if gen.AddTable(table, respell) == 0 {
		return "", ErrNoCards
	}

	outputPath := filepath.Join(r.flags.OutputDir, anki.DeckFileName(r.flags.DeckName))
	if err := gen.GenerateAPKG(outputPath, r.flags.DeckName); err != nil {
		return "", err
	}

	total, withRespelling := gen.Stats()
	fmt.Fprintf(r.out, "  Generated %d cards (%d with respelling)\n", total, withRespelling)
	return outputPath, nil
}
