package anki

import (
	"encoding/csv"
	"fmt"
	"os"

	"codeberg.org/snonux/pronounceit/internal/report"
)

// Card represents a single Anki flashcard
type Card struct {
	Word          string // The word as the user entered it
	Respelling    string // Hyphenated phonetic respelling
	Pronunciation string // Raw ARPAbet pronunciation
	Notes         string // Optional notes
}

// GeneratorOptions configures the Anki export
type GeneratorOptions struct {
	OutputPath     string // Output CSV file path
	IncludeHeaders bool   // Include CSV headers
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		OutputPath:     "anki_import.csv",
		IncludeHeaders: true,
	}
}

// Generator creates Anki-compatible import files
type Generator struct {
	options *GeneratorOptions
	cards   []Card
}

// NewGenerator creates a new Anki generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{
		options: options,
		cards:   make([]Card, 0),
	}
}

// AddCard adds a card to the collection
func (g *Generator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// GetCards returns a slice of all cards for modification
func (g *Generator) GetCards() []Card {
	return g.cards
}

// AddTable adds one card per found row of table. Rows without a
// pronunciation are skipped. It returns the number of cards added.
func (g *Generator) AddTable(table *report.Table, respell func(pronunciation string) string) int {
	added := 0
	for _, row := range table.Found() {
		card := Card{
			Word:          row.Word,
			Pronunciation: row.Pronunciation,
		}
		if table.Mode == report.ModeRespelling {
			card.Respelling = row.Value
		} else if respell != nil {
			card.Respelling = respell(row.Pronunciation)
		}
		if card.Pronunciation == "" && card.Respelling == "" {
			continue
		}
		g.AddCard(card)
		added++
	}
	return added
}

// GenerateCSV creates a CSV file for Anki import
func (g *Generator) GenerateCSV() error {
	file, err := os.Create(g.options.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if g.options.IncludeHeaders {
		headers := []string{"Word", "Respelling", "Pronunciation", "Notes"}
		if err := writer.Write(headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, card := range g.cards {
		record := []string{
			card.Word,
			card.Respelling,
			card.Pronunciation,
			card.Notes,
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// GenerateAPKG creates a proper .apkg file for Anki import
func (g *Generator) GenerateAPKG(outputPath, deckName string) error {
	apkgGen := NewAPKGGenerator(deckName)

	for _, card := range g.cards {
		apkgGen.AddCard(card)
	}

	return apkgGen.GenerateAPKG(outputPath)
}

// Stats returns statistics about the card collection
func (g *Generator) Stats() (totalCards, withRespelling int) {
	totalCards = len(g.cards)

	for _, card := range g.cards {
		if card.Respelling != "" {
			withRespelling++
		}
	}

	return
}
