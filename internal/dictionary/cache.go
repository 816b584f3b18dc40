package dictionary

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"codeberg.org/snonux/pronounceit/internal/phonetic"
)

// Cached keeps recent lookups of another dictionary in an LRU cache. Misses
// are cached too; errors are not.
type Cached struct {
	next  Dictionary
	cache *lru.Cache[string, []phonetic.Pronunciation]
}

// NewCached wraps next with a cache holding up to size words
func NewCached(next Dictionary, size int) (*Cached, error) {
	cache, err := lru.New[string, []phonetic.Pronunciation](size)
	if err != nil {
		return nil, fmt.Errorf("create lookup cache: %w", err)
	}
	return &Cached{next: next, cache: cache}, nil
}

// Lookup serves word from the cache or asks the wrapped dictionary
func (c *Cached) Lookup(ctx context.Context, word string) ([]phonetic.Pronunciation, error) {
	key := NormalizeWord(word)
	if prons, ok := c.cache.Get(key); ok {
		return clonePronunciations(prons), nil
	}

	prons, err := c.next.Lookup(ctx, word)
	if err != nil {
		return nil, err
	}

	c.cache.Add(key, clonePronunciations(prons))
	return prons, nil
}

// Len returns the number of cached words
func (c *Cached) Len() int {
	return c.cache.Len()
}

// Name returns the wrapped dictionary name
func (c *Cached) Name() string {
	return c.next.Name()
}

// IsAvailable delegates to the wrapped dictionary
func (c *Cached) IsAvailable() error {
	return c.next.IsAvailable()
}

// Close closes the wrapped dictionary
func (c *Cached) Close() error {
	return Close(c.next)
}
