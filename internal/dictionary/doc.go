// Package dictionary looks words up in a pronunciation dictionary and returns
// their ARPAbet pronunciations in dictionary order. Backends include a parsed
// CMU Pronouncing Dictionary file, a SQLite index built from it, and LLM
// backends (OpenAI, Gemini) guarded by a circuit breaker. Backends can be
// wrapped with an LRU cache and an error fallback.
package dictionary
