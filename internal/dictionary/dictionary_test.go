package dictionary

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/pronounceit/internal/phonetic"
	"codeberg.org/snonux/pronounceit/internal/testutil"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, BackendCMUDict, cfg.Backend)
	assert.Empty(t, cfg.Fallback)
	assert.Equal(t, "cmudict.dict", filepath.Base(cfg.CMUDictPath))
	assert.Equal(t, "cmudict.sqlite", filepath.Base(cfg.DBPath))
	assert.Positive(t, cfg.CacheSize)
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("cmudict with cache", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.CMUDictPath = testdataPath(t, "cmudict.dict")

		dict, err := New(ctx, cfg)
		require.NoError(t, err)
		defer Close(dict)

		_, ok := dict.(*Cached)
		assert.True(t, ok, "expected cached dictionary, got %T", dict)
		assert.Equal(t, BackendCMUDict, dict.Name())

		got, err := dict.Lookup(ctx, "cat")
		require.NoError(t, err)
		assert.Equal(t, []phonetic.Pronunciation{{"K", "AE1", "T"}}, got)
	})

	t.Run("cmudict without cache", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.CMUDictPath = testdataPath(t, "cmudict.dict")
		cfg.CacheSize = 0

		dict, err := New(ctx, cfg)
		require.NoError(t, err)
		_, ok := dict.(*CMUDict)
		assert.True(t, ok, "expected *CMUDict, got %T", dict)
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Backend = BackendSQLite
		cfg.DBPath = filepath.Join(t.TempDir(), "index.sqlite")

		dict, err := New(ctx, cfg)
		require.NoError(t, err)
		assert.NoError(t, Close(dict))
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Backend = "wiktionary"

		_, err := New(ctx, cfg)
		assert.ErrorIs(t, err, ErrUnknownBackend)
	})

	t.Run("openai requires key", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Backend = BackendOpenAI

		_, err := New(ctx, cfg)
		assert.Error(t, err)
	})

	t.Run("gemini requires key", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Backend = BackendGemini

		_, err := New(ctx, cfg)
		assert.Error(t, err)
	})

	t.Run("missing cmudict file", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.CMUDictPath = filepath.Join(t.TempDir(), "missing.dict")

		_, err := New(ctx, cfg)
		assert.Error(t, err)
	})

	t.Run("with fallback", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.CMUDictPath = testdataPath(t, "cmudict.dict")
		cfg.Fallback = BackendOpenAI
		cfg.OpenAIKey = "test-key"
		cfg.CacheSize = 0

		dict, err := New(ctx, cfg)
		require.NoError(t, err)
		assert.Equal(t, "cmudict (fallback: openai)", dict.Name())
	})
}

func TestWithFallback(t *testing.T) {
	ctx := context.Background()
	backendErr := errors.New("backend down")

	primary := testutil.NewMockDictionary(map[string][]string{"cat": {"K AE1 T"}})
	primary.MockName = "primary"
	primary.Errors["dog"] = backendErr

	fallback := testutil.NewMockDictionary(map[string][]string{"dog": {"D AO1 G"}, "fish": {"F IH1 SH"}})
	fallback.MockName = "fallback"

	dict := WithFallback(primary, fallback)

	got, err := dict.Lookup(ctx, "cat")
	require.NoError(t, err)
	assert.Equal(t, []phonetic.Pronunciation{{"K", "AE1", "T"}}, got)

	got, err = dict.Lookup(ctx, "dog")
	require.NoError(t, err, "fallback should serve words the primary failed on")
	assert.Equal(t, []phonetic.Pronunciation{{"D", "AO1", "G"}}, got)

	got, err = dict.Lookup(ctx, "fish")
	require.NoError(t, err)
	assert.Empty(t, got, "a miss in the primary is final")

	assert.Equal(t, []string{"dog"}, fallback.Calls)
}

func TestWithFallback_IsAvailable(t *testing.T) {
	primary := testutil.NewMockDictionary(nil)
	fallback := testutil.NewMockDictionary(nil)
	dict := WithFallback(primary, fallback)

	assert.NoError(t, dict.IsAvailable())

	primary.Unavailable = true
	assert.NoError(t, dict.IsAvailable())

	fallback.Unavailable = true
	assert.Error(t, dict.IsAvailable())
}

func TestCached(t *testing.T) {
	ctx := context.Background()
	backendErr := errors.New("backend down")

	mock := testutil.NewMockDictionary(map[string][]string{"cat": {"K AE1 T"}})
	mock.Errors["dog"] = backendErr

	cached, err := NewCached(mock, 16)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		got, err := cached.Lookup(ctx, "Cat")
		require.NoError(t, err)
		assert.Equal(t, []phonetic.Pronunciation{{"K", "AE1", "T"}}, got)
	}
	assert.Equal(t, 1, mock.CallCount(), "hits should be served from the cache")

	for i := 0; i < 2; i++ {
		got, err := cached.Lookup(ctx, "blorp")
		require.NoError(t, err)
		assert.Empty(t, got)
	}
	assert.Equal(t, 2, mock.CallCount(), "misses should be cached")

	for i := 0; i < 2; i++ {
		_, err := cached.Lookup(ctx, "dog")
		assert.ErrorIs(t, err, backendErr)
	}
	assert.Equal(t, 4, mock.CallCount(), "errors must not be cached")
	assert.Equal(t, 2, cached.Len())
}

func TestCached_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	mock := testutil.NewMockDictionary(map[string][]string{"cat": {"K AE1 T"}})

	cached, err := NewCached(mock, 4)
	require.NoError(t, err)

	first, err := cached.Lookup(ctx, "cat")
	require.NoError(t, err)
	first[0][0] = "ZZ"

	second, err := cached.Lookup(ctx, "cat")
	require.NoError(t, err)
	assert.Equal(t, "K", second[0][0])
}

func TestNewCached_InvalidSize(t *testing.T) {
	_, err := NewCached(testutil.NewMockDictionary(nil), 0)
	assert.Error(t, err)
}
