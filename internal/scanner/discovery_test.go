package scanner

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDiscoverer(limit int) *Discoverer {
	return NewDiscoverer(testSearchTemplate, limit, testExtractor(), zerolog.Nop())
}

func TestDiscoverer_SearchURL(t *testing.T) {
	d := newTestDiscoverer(10)
	assert.Equal(t, "https://search.test/?q=https%3A%2F%2Fexample.com%2Fpost%2F42", d.SearchURL(testTarget))

	appended := NewDiscoverer("https://search.test/?q=", 10, testExtractor(), zerolog.Nop())
	assert.Equal(t, "https://search.test/?q=a+b", appended.SearchURL("a b"))

	encoded := NewDiscoverer("https://www.facebook.com/search/groups/?filters=eyJ%3D&q=%s", 10, testExtractor(), zerolog.Nop())
	assert.Equal(t,
		"https://www.facebook.com/search/groups/?filters=eyJ%3D&q=https%3A%2F%2Fexample.com%2Fpost%2F42",
		encoded.SearchURL(testTarget))
}

func TestDiscoverer_NeverExceedsLimit(t *testing.T) {
	slugs := make([]string, 40)
	for i := range slugs {
		slugs[i] = "g" + strconv.Itoa(i)
	}

	for _, limit := range []int{1, 5, 40, 100} {
		session := newFakeSession()
		session.pages[searchURL(testTarget)] = searchPage(slugs...)

		candidates, err := newTestDiscoverer(limit).Discover(context.Background(), session, testTarget)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(candidates), limit)
		assert.Equal(t, min(limit, len(slugs)), len(candidates))
		assert.Equal(t, groupURL("g0"), candidates[0].Location)
	}
}

func TestDiscoverer_PrimarySuccessSkipsFallback(t *testing.T) {
	session := newFakeSession()
	session.pages[searchURL(testTarget)] = searchPage("a")
	session.pages[searchURL("42")] = searchPage("b")

	candidates, err := newTestDiscoverer(10).Discover(context.Background(), session, testTarget)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, groupURL("a"), candidates[0].Location)
	assert.Equal(t, 1, session.renderCount())
}

func TestDiscoverer_PrimaryFailureFallsThrough(t *testing.T) {
	session := newFakeSession()
	session.failures[searchURL(testTarget)] = errors.New("rate limited")
	session.pages[searchURL("42")] = searchPage("b")

	candidates, err := newTestDiscoverer(10).Discover(context.Background(), session, testTarget)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, groupURL("b"), candidates[0].Location)
}

func TestDiscoverer_FallbackFailure(t *testing.T) {
	session := newFakeSession()
	session.pages[searchURL(testTarget)] = searchPage()
	session.failures[searchURL("42")] = errors.New("rate limited")

	candidates, err := newTestDiscoverer(10).Discover(context.Background(), session, testTarget)
	assert.Nil(t, candidates)
	assert.ErrorIs(t, err, ErrDiscoveryFailure)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestDiscoverer_FallbackEqualsPrimary(t *testing.T) {
	t.Run("empty result", func(t *testing.T) {
		session := newFakeSession()
		session.pages[searchURL("plain")] = searchPage()

		candidates, err := newTestDiscoverer(10).Discover(context.Background(), session, "plain")
		require.NoError(t, err)
		assert.Empty(t, candidates)
		assert.Equal(t, 1, session.renderCount())
	})

	t.Run("primary failure", func(t *testing.T) {
		session := newFakeSession()
		session.failures[searchURL("plain")] = errors.New("boom")

		_, err := newTestDiscoverer(10).Discover(context.Background(), session, "plain")
		assert.ErrorIs(t, err, ErrDiscoveryFailure)
		assert.Equal(t, 1, session.renderCount())
	})
}
