package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WordColumn is the mandatory header of a CSV word list
const WordColumn = "Word"

// ErrMissingWordColumn is returned when a CSV word list has no Word column
var ErrMissingWordColumn = errors.New("CSV file must contain a 'Word' column")

// ParseWordList splits free-form text into words. Commas and newlines both
// separate entries; surrounding whitespace is trimmed and empty entries are
// dropped.
func ParseWordList(text string) []string {
	var words []string
	for _, entry := range splitEntries(text) {
		if entry = strings.TrimSpace(entry); entry != "" {
			words = append(words, entry)
		}
	}
	return words
}

// ReadWordColumn reads the Word column of a CSV document with a header row.
// Empty cells are skipped.
func ReadWordColumn(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrMissingWordColumn
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	col := -1
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if strings.TrimSpace(name) == WordColumn {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, ErrMissingWordColumn
	}

	var words []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if col >= len(record) {
			continue
		}
		if word := strings.TrimSpace(record[col]); word != "" {
			words = append(words, word)
		}
	}

	return words, nil
}

// ReadBatchFile reads words from a file. Files ending in .csv must carry a
// Word column; anything else is treated as a plain word list.
func ReadBatchFile(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		words, err := ReadWordColumn(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		return words, nil
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return ParseWordList(string(content)), nil
}

// splitEntries splits a string on newlines and commas, dropping carriage
// returns.
func splitEntries(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '\n' || r == ',' || r == '\r'
	})
}
