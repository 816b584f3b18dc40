package dictionary

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"codeberg.org/snonux/pronounceit/internal/phonetic"
)

// errSkipLine signals that a line should be skipped (comment, empty, etc.).
var errSkipLine = errors.New("skip line")

// CMUDict is an in-memory CMU Pronouncing Dictionary. It is read-only after
// Parse and safe for concurrent lookups.
type CMUDict struct {
	entries map[string][]phonetic.Pronunciation
	stats   Stats
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalLines   int
	CommentLines int
	ParsedLines  int
	UniqueWords  int
}

type variant struct {
	index int
	pron  phonetic.Pronunciation
}

// Load reads a CMU dictionary file from disk.
func Load(path string) (*CMUDict, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cmudict: %w", err)
	}
	defer f.Close()

	dict, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return dict, nil
}

// Parse reads a CMU dictionary. Both the classic layout
// ("HOUSE(2)  HH AW1 Z", ";;;" comments) and the cmudict.dict layout
// ("house(2) hh aw1 z # comment") are accepted. Variants of a word are
// ordered by their variant number, primary first.
func Parse(r io.Reader) (*CMUDict, error) {
	variants := make(map[string][]variant)
	var stats Stats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		stats.TotalLines++
		line := scanner.Text()

		word, v, err := parseLine(line)
		if err == errSkipLine {
			if strings.HasPrefix(line, ";;;") {
				stats.CommentLines++
			}
			continue
		}

		stats.ParsedLines++
		variants[word] = append(variants[word], v)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}

	entries := make(map[string][]phonetic.Pronunciation, len(variants))
	for word, vs := range variants {
		sort.SliceStable(vs, func(i, j int) bool { return vs[i].index < vs[j].index })
		prons := make([]phonetic.Pronunciation, len(vs))
		for i, v := range vs {
			prons[i] = v.pron
		}
		entries[word] = prons
	}
	stats.UniqueWords = len(entries)

	return &CMUDict{entries: entries, stats: stats}, nil
}

// Lookup returns the pronunciations of word, primary first.
func (d *CMUDict) Lookup(ctx context.Context, word string) ([]phonetic.Pronunciation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return clonePronunciations(d.entries[NormalizeWord(word)]), nil
}

// Name returns the backend name
func (d *CMUDict) Name() string {
	return BackendCMUDict
}

// IsAvailable reports an error for an empty dictionary
func (d *CMUDict) IsAvailable() error {
	if len(d.entries) == 0 {
		return fmt.Errorf("cmudict contains no entries")
	}
	return nil
}

// Stats returns parser statistics
func (d *CMUDict) Stats() Stats {
	return d.stats
}

// Len returns the number of distinct words
func (d *CMUDict) Len() int {
	return len(d.entries)
}

// Words returns all words in sorted order
func (d *CMUDict) Words() []string {
	words := make([]string, 0, len(d.entries))
	for word := range d.entries {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

// parseLine parses a single dictionary line into the normalized word and
// one pronunciation variant.
func parseLine(line string) (string, variant, error) {
	if strings.HasPrefix(line, ";;;") {
		return "", variant{}, errSkipLine
	}

	// cmudict.dict trails some entries with "# comment".
	if idx := strings.Index(line, " #"); idx >= 0 {
		line = line[:idx]
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", variant{}, errSkipLine
	}

	word, index := parseWordAndVariant(fields[0])
	if word == "" {
		return "", variant{}, errSkipLine
	}

	pron := make(phonetic.Pronunciation, len(fields)-1)
	for i, symbol := range fields[1:] {
		pron[i] = strings.ToUpper(symbol)
	}

	return word, variant{index: index, pron: pron}, nil
}

// parseWordAndVariant splits a raw word like "HOUSE(2)" into the normalized
// word and its variant index: 0 for the primary entry, 1 for "(2)", etc.
func parseWordAndVariant(raw string) (string, int) {
	idx := strings.IndexByte(raw, '(')
	if idx <= 0 || !strings.HasSuffix(raw, ")") {
		return NormalizeWord(raw), 0
	}

	n, err := strconv.Atoi(raw[idx+1 : len(raw)-1])
	if err != nil || n < 1 {
		return NormalizeWord(raw), 0
	}

	return NormalizeWord(raw[:idx]), n - 1
}
