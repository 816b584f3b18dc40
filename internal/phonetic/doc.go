// Package phonetic turns CMU-style ARPAbet pronunciations into compact,
// hyphenated respellings that a language learner can read aloud, e.g.
// HH EH1 L OW0 becomes "h-e-l-oh". The symbol table and the ordered cluster
// rules are fixed process-wide configuration; transcription is a pure
// function of its input.
package phonetic
