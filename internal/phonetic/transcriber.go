package phonetic

import (
	"strings"
)

// Pronunciation is one ordered sequence of phoneme symbols for a word,
// e.g. {"HH", "AH0", "L", "OW1"}.
type Pronunciation []string

// ParsePronunciation splits a dictionary phone string on whitespace.
func ParsePronunciation(s string) Pronunciation {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	return Pronunciation(fields)
}

// String returns the space-joined raw phonemes.
func (p Pronunciation) String() string {
	return strings.Join(p, " ")
}

// FormatRaw renders the raw phoneme sequence as it appears in the
// dictionary, stress digits included.
func FormatRaw(p Pronunciation) string {
	return p.String()
}

// Transcriber converts pronunciations into readable respellings. A
// Transcriber is immutable after construction and safe for concurrent use.
type Transcriber struct {
	symbols SymbolMap
	rules   []ClusterRule
}

// Option configures a Transcriber
type Option func(*Transcriber)

// WithSymbols replaces the symbol table. Keys are matched case-insensitively.
func WithSymbols(symbols SymbolMap) Option {
	return func(t *Transcriber) {
		t.symbols = symbols.clone()
	}
}

// WithClusterRules replaces the cluster rules. The given order is the order
// of application.
func WithClusterRules(rules []ClusterRule) Option {
	return func(t *Transcriber) {
		t.rules = make([]ClusterRule, len(rules))
		copy(t.rules, rules)
	}
}

// NewTranscriber creates a transcriber with the built-in symbol table and
// cluster rules unless overridden by opts.
func NewTranscriber(opts ...Option) *Transcriber {
	t := &Transcriber{
		symbols: defaultSymbols,
		rules:   defaultClusterRules,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

var defaultTranscriber = NewTranscriber()

// Transcribe converts p using the built-in configuration.
func Transcribe(p Pronunciation) string {
	return defaultTranscriber.Transcribe(p)
}

// Transcribe converts p into a hyphenated respelling. It never fails:
// unknown symbols fall back to their lower-cased form and an empty
// pronunciation yields "".
func (t *Transcriber) Transcribe(p Pronunciation) string {
	if len(p) == 0 {
		return ""
	}

	fragments := make([]string, len(p))
	for i, symbol := range p {
		fragments[i] = t.Translate(symbol)
	}
	spelling := strings.Join(fragments, " ")

	// Sequential on purpose: each rule sees the previous rule's output.
	for _, rule := range t.rules {
		if rule.Pattern == "" {
			continue
		}
		spelling = strings.ReplaceAll(spelling, rule.Pattern, rule.Replacement)
	}

	return strings.ReplaceAll(spelling, " ", "-")
}

// Translate maps a single, possibly stress-marked symbol to its fragment.
func (t *Transcriber) Translate(symbol string) string {
	bare := StripStress(symbol)
	if fragment, ok := t.symbols[strings.ToUpper(bare)]; ok {
		return fragment
	}
	return strings.ToLower(bare)
}

// StripStress removes a single trailing ASCII digit from symbol.
func StripStress(symbol string) string {
	if len(symbol) == 0 {
		return symbol
	}
	last := symbol[len(symbol)-1]
	if last >= '0' && last <= '9' {
		return symbol[:len(symbol)-1]
	}
	return symbol
}
