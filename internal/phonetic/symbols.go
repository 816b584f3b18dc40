package phonetic

import (
	"sort"
	"strings"
)

// defaultSymbols maps each ARPAbet phoneme (stress digit stripped) to a
// readable lower-case fragment.
var defaultSymbols = SymbolMap{
	"AA": "ah", "AE": "a", "AH": "uh", "AO": "aw", "AW": "ow",
	"AY": "ai", "B": "b", "CH": "ch", "D": "d", "DH": "th",
	"EH": "e", "ER": "ur", "EY": "ay", "F": "f", "G": "g",
	"HH": "h", "IH": "i", "IY": "ee", "JH": "j", "K": "k",
	"L": "l", "M": "m", "N": "n", "NG": "ng", "OW": "oh",
	"OY": "oy", "P": "p", "R": "r", "S": "s", "SH": "sh",
	"T": "t", "TH": "th", "UH": "oo", "UW": "oo", "V": "v",
	"W": "w", "Y": "y", "Z": "z", "ZH": "zh",
}

// defaultClusterRules run in this exact order over the space-joined
// fragments. Later rules see the output of earlier ones.
var defaultClusterRules = []ClusterRule{
	{Pattern: "h y uw", Replacement: "hyoo"},
	{Pattern: "ah n", Replacement: "uhn"},
	{Pattern: "ah", Replacement: "uh"},
}

// SymbolMap maps bare phoneme symbols to readable fragments.
type SymbolMap map[string]string

// ClusterRule is a literal substitution applied to the joined fragments
// before hyphenation.
type ClusterRule struct {
	Pattern     string
	Replacement string
}

// DefaultSymbols returns a copy of the built-in ARPAbet symbol table
func DefaultSymbols() SymbolMap {
	return defaultSymbols.clone()
}

// DefaultClusterRules returns a copy of the built-in cluster rules in
// declaration order
func DefaultClusterRules() []ClusterRule {
	rules := make([]ClusterRule, len(defaultClusterRules))
	copy(rules, defaultClusterRules)
	return rules
}

// Alphabet returns the sorted list of ARPAbet symbols known to the default
// symbol table.
func Alphabet() []string {
	symbols := make([]string, 0, len(defaultSymbols))
	for symbol := range defaultSymbols {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// IsKnownSymbol reports whether symbol, with any stress digit stripped,
// belongs to the ARPAbet alphabet.
func IsKnownSymbol(symbol string) bool {
	_, ok := defaultSymbols[strings.ToUpper(StripStress(symbol))]
	return ok
}

func (m SymbolMap) clone() SymbolMap {
	out := make(SymbolMap, len(m))
	for k, v := range m {
		out[strings.ToUpper(k)] = v
	}
	return out
}
