package anki

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"codeberg.org/snonux/pronounceit/internal/report"
)

func TestDefaultGeneratorOptions(t *testing.T) {
	opts := DefaultGeneratorOptions()

	if opts.OutputPath != "anki_import.csv" {
		t.Errorf("Expected OutputPath 'anki_import.csv', got '%s'", opts.OutputPath)
	}

	if !opts.IncludeHeaders {
		t.Error("Expected IncludeHeaders to be true")
	}
}

func TestNewGenerator(t *testing.T) {
	gen := NewGenerator(nil)
	if gen == nil {
		t.Fatal("NewGenerator returned nil")
	}
	if gen.options == nil {
		t.Error("Expected default options when nil is passed")
	}

	opts := &GeneratorOptions{OutputPath: "custom.csv"}
	gen = NewGenerator(opts)
	if gen.options != opts {
		t.Error("Expected custom options to be used")
	}
}

func TestAddCardAndGetCards(t *testing.T) {
	gen := NewGenerator(nil)

	gen.AddCard(Card{Word: "cat", Respelling: "k-a-t"})
	gen.AddCard(Card{Word: "dog", Respelling: "d-aw-g"})

	cards := gen.GetCards()
	if len(cards) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(cards))
	}
	if cards[0].Word != "cat" || cards[1].Word != "dog" {
		t.Errorf("Unexpected cards: %+v", cards)
	}
}

func TestAddTable(t *testing.T) {
	respellingTable := &report.Table{
		Mode: report.ModeRespelling,
		Rows: []report.Row{
			{Word: "hello", Value: "h-uh-l-oh", Status: report.StatusFound, Pronunciation: "HH AH0 L OW1"},
			{Word: "xyzzy", Value: "Phonetic spelling not found", Status: report.StatusNotFound},
			{Word: "broken", Value: "Lookup failed", Status: report.StatusFailed},
		},
	}

	gen := NewGenerator(nil)
	if added := gen.AddTable(respellingTable, nil); added != 1 {
		t.Fatalf("AddTable() added %d cards, want 1", added)
	}
	want := Card{Word: "hello", Respelling: "h-uh-l-oh", Pronunciation: "HH AH0 L OW1"}
	if !reflect.DeepEqual(gen.GetCards()[0], want) {
		t.Errorf("AddTable() card = %+v, want %+v", gen.GetCards()[0], want)
	}

	rawTable := &report.Table{
		Mode: report.ModeRaw,
		Rows: []report.Row{
			{Word: "cat", Value: "K AE1 T", Status: report.StatusFound, Pronunciation: "K AE1 T"},
		},
	}

	gen = NewGenerator(nil)
	gen.AddTable(rawTable, func(pron string) string {
		return strings.ToLower(strings.ReplaceAll(pron, " ", "-"))
	})
	want = Card{Word: "cat", Respelling: "k-ae1-t", Pronunciation: "K AE1 T"}
	if !reflect.DeepEqual(gen.GetCards()[0], want) {
		t.Errorf("AddTable() raw card = %+v, want %+v", gen.GetCards()[0], want)
	}
}

func TestGenerateCSV(t *testing.T) {
	tempDir := t.TempDir()
	outputPath := filepath.Join(tempDir, "test.csv")

	gen := NewGenerator(&GeneratorOptions{
		OutputPath:     outputPath,
		IncludeHeaders: true,
	})

	gen.AddCard(Card{
		Word:          "hello",
		Respelling:    "h-uh-l-oh",
		Pronunciation: "HH AH0 L OW1",
		Notes:         "A greeting",
	})
	gen.AddCard(Card{
		Word:          "ice cream, vanilla",
		Respelling:    "iy-s k-r-ee-m",
		Pronunciation: "AY1 S K R IY1 M",
	})

	if err := gen.GenerateCSV(); err != nil {
		t.Fatalf("GenerateCSV() error = %v", err)
	}

	file, err := os.Open(outputPath)
	if err != nil {
		t.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}

	want := [][]string{
		{"Word", "Respelling", "Pronunciation", "Notes"},
		{"hello", "h-uh-l-oh", "HH AH0 L OW1", "A greeting"},
		{"ice cream, vanilla", "iy-s k-r-ee-m", "AY1 S K R IY1 M", ""},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("GenerateCSV() records = %v, want %v", records, want)
	}
}

func TestGenerateCSVWithoutHeaders(t *testing.T) {
	tempDir := t.TempDir()
	outputPath := filepath.Join(tempDir, "test.csv")

	gen := NewGenerator(&GeneratorOptions{
		OutputPath:     outputPath,
		IncludeHeaders: false,
	})
	gen.AddCard(Card{Word: "cat", Respelling: "k-a-t", Pronunciation: "K AE1 T"})

	if err := gen.GenerateCSV(); err != nil {
		t.Fatalf("GenerateCSV() error = %v", err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Failed to read CSV file: %v", err)
	}
	if got := string(content); got != "cat,k-a-t,K AE1 T,\n" {
		t.Errorf("GenerateCSV() content = %q", got)
	}
}

func TestGenerateCSV_BadPath(t *testing.T) {
	gen := NewGenerator(&GeneratorOptions{
		OutputPath: filepath.Join(t.TempDir(), "missing", "dir", "test.csv"),
	})
	if err := gen.GenerateCSV(); err == nil {
		t.Error("Expected error for unwritable output path")
	}
}

func TestGeneratorGenerateAPKG(t *testing.T) {
	gen := NewGenerator(nil)
	gen.AddCard(Card{Word: "cat", Respelling: "k-a-t", Pronunciation: "K AE1 T"})

	outputPath := filepath.Join(t.TempDir(), DeckFileName("Test Deck"))
	if err := gen.GenerateAPKG(outputPath, "Test Deck"); err != nil {
		t.Fatalf("GenerateAPKG() error = %v", err)
	}
	if _, err := os.Stat(outputPath); err != nil {
		t.Errorf("Expected APKG file at %s: %v", outputPath, err)
	}
}

func TestStats(t *testing.T) {
	gen := NewGenerator(nil)
	gen.AddCard(Card{Word: "cat", Respelling: "k-a-t"})
	gen.AddCard(Card{Word: "dog", Pronunciation: "D AO1 G"})
	gen.AddCard(Card{Word: "fun", Respelling: "f-uhn"})

	total, withRespelling := gen.Stats()
	if total != 3 {
		t.Errorf("Expected 3 total cards, got %d", total)
	}
	if withRespelling != 2 {
		t.Errorf("Expected 2 cards with respelling, got %d", withRespelling)
	}
}
