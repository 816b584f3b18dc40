package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"

	"codeberg.org/snonux/pronounceit/internal/phonetic"
)

// ErrMockUnavailable is returned by an unavailable MockDictionary
var ErrMockUnavailable = errors.New("mock dictionary unavailable")

// MockDictionary is an in-memory dictionary for tests. Keys are matched
// case-insensitively.
type MockDictionary struct {
	Entries     map[string][]phonetic.Pronunciation
	Errors      map[string]error
	Unavailable bool
	MockName    string

	mu    sync.Mutex
	Calls []string
}

// NewMockDictionary creates a mock dictionary with the given entries, each
// given as a space separated phone string.
func NewMockDictionary(entries map[string][]string) *MockDictionary {
	m := &MockDictionary{
		Entries: make(map[string][]phonetic.Pronunciation),
		Errors:  make(map[string]error),
	}
	for word, phones := range entries {
		for _, p := range phones {
			key := strings.ToLower(word)
			m.Entries[key] = append(m.Entries[key], phonetic.ParsePronunciation(p))
		}
	}
	return m
}

// Lookup mocks a dictionary lookup
func (m *MockDictionary) Lookup(ctx context.Context, word string) ([]phonetic.Pronunciation, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, word)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := strings.ToLower(strings.TrimSpace(word))
	if err, ok := m.Errors[key]; ok {
		return nil, err
	}
	return m.Entries[key], nil
}

// Name returns the mock name
func (m *MockDictionary) Name() string {
	if m.MockName != "" {
		return m.MockName
	}
	return "mock"
}

// IsAvailable mocks availability
func (m *MockDictionary) IsAvailable() error {
	if m.Unavailable {
		return ErrMockUnavailable
	}
	return nil
}

// CallCount returns the number of lookups performed
func (m *MockDictionary) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
