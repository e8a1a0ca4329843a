package directory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sjsage522/dirscraper/logger"
	apperrors "sjsage522/dirscraper/pkg/errors"
)

func TestContainerSelector(t *testing.T) {
	assert.Equal(t, DefaultContainer, ContainerSelector(""))
	assert.Equal(t, ".ListVerticalImage-items-item", ContainerSelector("ListVerticalImage-items-item"))
	assert.Equal(t, "div.card", ContainerSelector("div.card"))
	assert.Equal(t, "ul > li", ContainerSelector("ul > li"))
}

func TestFragmentsDocumentOrder(t *testing.T) {
	seq, err := Fragments(strings.NewReader(directoryPage), "ListVerticalImage-items-item")
	require.NoError(t, err)

	var indexes []int
	for i := range seq {
		indexes = append(indexes, i)
	}
	assert.Equal(t, []int{0, 1, 2}, indexes)
}

func TestFragmentsNoMatches(t *testing.T) {
	seq, err := Fragments(strings.NewReader("<html><body><p>empty</p></body></html>"), DefaultContainer)
	require.NoError(t, err)

	count := 0
	for range seq {
		count++
	}
	assert.Zero(t, count)
}

func TestFragmentsStopEarly(t *testing.T) {
	seq, err := Fragments(strings.NewReader(directoryPage), DefaultContainer)
	require.NoError(t, err)

	seen := 0
	for range seq {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func newTestScraper(skipInvalid bool) (*Scraper, *MockFetcher) {
	p := religion()
	fetcher := NewMockFetcher(map[string]string{p.URL: directoryPage})
	return NewScraper(fetcher, p, skipInvalid).WithLogger(logger.Nop()), fetcher
}

func TestScrapeStrict(t *testing.T) {
	s, _ := newTestScraper(false)

	_, err := s.Scrape(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeExtraction))
	assert.Contains(t, err.Error(), "entry 2")
}

func TestScrapeSkipInvalid(t *testing.T) {
	s, fetcher := newTestScraper(true)

	employees, err := s.Scrape(context.Background())
	require.NoError(t, err)
	require.Len(t, employees, 2)

	assert.Equal(t, "John Smith Jr.", employees[0].FullName())
	assert.Equal(t, "Jane Doe", employees[1].FullName())
	assert.Equal(t, "https://religion.example.edu/jane-doe", employees[1].PageURL)
	assert.Equal(t, []string{"https://religion.example.edu/directory"}, fetcher.calls)
}

func TestScrapeFetchFailure(t *testing.T) {
	s, _ := newTestScraper(true)

	_, err := s.ScrapeURL(context.Background(), "https://religion.example.edu/missing")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeNetwork))
}

func TestScrapeEmptyURL(t *testing.T) {
	s, _ := newTestScraper(true)

	_, err := s.ScrapeURL(context.Background(), "")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
}

func TestScrapeCancelled(t *testing.T) {
	s, _ := newTestScraper(true)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Scrape(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolveURL(t *testing.T) {
	base := "https://religion.example.edu/directory"
	assert.Equal(t, "https://religion.example.edu/jane", resolveURL(base, "/jane"))
	assert.Equal(t, "https://other.example.edu/x", resolveURL(base, "https://other.example.edu/x"))
}
