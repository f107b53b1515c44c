package extractor

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivam1584818/fb-group-finder-backend/internal/config"
	"github.com/shivam1584818/fb-group-finder-backend/internal/models"
)

func newTestFilter() *LinkFilter {
	return NewLinkFilter(config.NewDefaultExtractorConfig())
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestLinkFilter_Canonicalize(t *testing.T) {
	base := &url.URL{Scheme: "https", Host: "www.facebook.com", Path: "/search/groups/"}

	tests := []struct {
		name     string
		raw      string
		expected string
		ok       bool
	}{
		{"absolute", "https://www.facebook.com/groups/cats/", "https://www.facebook.com/groups/cats/", true},
		{"missing trailing slash", "https://www.facebook.com/groups/cats", "https://www.facebook.com/groups/cats/", true},
		{"query and fragment dropped", "https://www.facebook.com/groups/cats/?ref=search#top", "https://www.facebook.com/groups/cats/", true},
		{"deeper path collapsed", "https://www.facebook.com/groups/cats/posts/99", "https://www.facebook.com/groups/cats/", true},
		{"relative resolved", "/groups/12345/", "https://www.facebook.com/groups/12345/", true},
		{"host lowercased", "https://WWW.Facebook.com/groups/cats/", "https://www.facebook.com/groups/cats/", true},
		{"mobile host", "https://m.facebook.com/groups/cats/", "https://m.facebook.com/groups/cats/", true},
		{"foreign host", "https://example.com/groups/cats/", "", false},
		{"not a group", "https://www.facebook.com/profile.php?id=1", "", false},
		{"excluded slug", "https://www.facebook.com/groups/feed/", "", false},
		{"excluded slug case", "https://www.facebook.com/groups/Discover", "", false},
		{"bare prefix", "https://www.facebook.com/groups/", "", false},
		{"javascript scheme", "javascript:void(0)", "", false},
		{"empty", "", "", false},
	}

	lf := newTestFilter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := lf.Canonicalize(tt.raw, base)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLinkFilter_PrefixWithoutTrailingSlash(t *testing.T) {
	lf := NewLinkFilter(config.ExtractorConfig{
		AllowedHosts: []string{"example.com"},
		PathPrefix:   "/g",
	})

	got, ok := lf.Canonicalize("https://example.com/g/one", nil)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/g/one/", got)

	_, ok = lf.Canonicalize("https://example.com/groups/one", nil)
	assert.False(t, ok)
}

func TestCleanLabel(t *testing.T) {
	label, ok := cleanLabel("  Cats \n\t and   Dogs ")
	assert.True(t, ok)
	assert.Equal(t, "Cats and Dogs", label)

	_, ok = cleanLabel(" x ")
	assert.False(t, ok)

	label, ok = cleanLabel(strings.Repeat("é", 200))
	assert.True(t, ok)
	assert.Equal(t, maxLabelLength, len([]rune(label)))
}

func TestDOMExtractor_Extract(t *testing.T) {
	page := `<html><body>
		<a href="https://www.facebook.com/groups/cats/?ref=search">Cats United</a>
		<a href="/groups/dogs/"><span>Dog</span> <span>Lovers</span></a>
		<a href="https://www.facebook.com/groups/cats/">Cats Duplicate</a>
		<a href="https://www.facebook.com/groups/feed/">Your feed</a>
		<a href="https://www.facebook.com/groups/birds/" aria-label="Bird Watchers"><img src="x.png"></a>
		<a href="https://www.facebook.com/groups/silent/"></a>
		<a href="https://www.facebook.com/groups/silent/">Silent Group</a>
		<a href="https://example.com/groups/other/">Elsewhere</a>
		<a>no href</a>
	</body></html>`

	de := NewDOMExtractor(newTestFilter())
	got := de.Extract(page, mustParse(t, "https://www.facebook.com/search/groups/?q=x"))

	assert.Equal(t, []models.Candidate{
		{Location: "https://www.facebook.com/groups/cats/", Label: "Cats United"},
		{Location: "https://www.facebook.com/groups/dogs/", Label: "Dog Lovers"},
		{Location: "https://www.facebook.com/groups/birds/", Label: "Bird Watchers"},
		{Location: "https://www.facebook.com/groups/silent/", Label: "Silent Group"},
	}, got)
}

func TestDOMExtractor_EmptyPage(t *testing.T) {
	de := NewDOMExtractor(newTestFilter())
	got := de.Extract("", nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestEscapedExtractor_Extract(t *testing.T) {
	payload := `<script>{"__html":"<div><a href=\"https:\/\/www.facebook.com\/groups\/123456\/\" role=\"link\">Cats &amp; Dogs<\/a>` +
		`<a href=\"https:\/\/www.facebook.com\/groups\/feed\/\">Feed<\/a>` +
		`<a href=\"https:\/\/www.facebook.com\/groups\/plants?ref=search&amp;x=1\" tabindex=\"0\">Plant People<\/a>` +
		`<a href=\"https:\/\/www.facebook.com\/groups\/123456\/\">Dup<\/a>` +
		`<a href=\"https:\/\/example.com\/groups\/nope\/\">Nope<\/a></div>"}</script>`

	ee := NewEscapedExtractor(newTestFilter())
	got := ee.Extract(payload, nil)

	assert.Equal(t, []models.Candidate{
		{Location: "https://www.facebook.com/groups/123456/", Label: "Cats & Dogs"},
		{Location: "https://www.facebook.com/groups/plants/", Label: "Plant People"},
	}, got)
}

func TestEscapedExtractor_NoHosts(t *testing.T) {
	ee := NewEscapedExtractor(NewLinkFilter(config.ExtractorConfig{PathPrefix: "/groups/"}))
	got := ee.Extract(`href=\"https:\/\/www.facebook.com\/groups\/1\/\">Group One<`, nil)
	assert.Empty(t, got)
}

func TestChain_FirstSeenWins(t *testing.T) {
	page := `<html><body>
		<a href="https://www.facebook.com/groups/alpha/">Alpha From DOM</a>
		<script>var x = "<a href=\"https:\/\/www.facebook.com\/groups\/alpha\/\">Alpha From Script<\/a>` +
		`<a href=\"https:\/\/www.facebook.com\/groups\/beta\/\">Beta From Script<\/a>";</script>
	</body></html>`

	got := New(config.NewDefaultExtractorConfig()).Extract(page, nil)

	require.Len(t, got, 2)
	assert.Equal(t, models.Candidate{Location: "https://www.facebook.com/groups/alpha/", Label: "Alpha From DOM"}, got[0])
	assert.Equal(t, models.Candidate{Location: "https://www.facebook.com/groups/beta/", Label: "Beta From Script"}, got[1])
}

func TestChain_Deterministic(t *testing.T) {
	page := `<a href="/groups/one/">One Group</a><a href="/groups/two/">Two Group</a>`
	base := mustParse(t, "https://www.facebook.com/")
	ex := New(config.NewDefaultExtractorConfig())

	first := ex.Extract(page, base)
	second := ex.Extract(page, base)
	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
}
