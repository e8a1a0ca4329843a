package directory

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// MockFetcher serves canned pages keyed by URL
type MockFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	calls []string
}

var _ Fetcher = (*MockFetcher)(nil)

func NewMockFetcher(pages map[string]string) *MockFetcher {
	return &MockFetcher{pages: pages}
}

func (m *MockFetcher) FetchHTML(_ context.Context, url string) (io.Reader, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, url)

	page, ok := m.pages[url]
	if !ok {
		return nil, errors.New("fetch " + url + " unexpected status code: 404")
	}
	return strings.NewReader(page), nil
}

const directoryPage = `<html><body>
<div class="ListVerticalImage-items">
  <div class="ListVerticalImage-items-item">
    <div class="PromoVerticalImage">
      <a class="Link" href="https://religion.example.edu/john-smith" data-cms-ai="0" aria-label="John&nbsp;Smith Jr."><img src="/a.jpg"></a>
      <div class="PromoVerticalImage-title"><a class="Link" href="https://religion.example.edu/john-smith">John Smith Jr.</a></div>
      <div class="PromoVerticalImage-jobTitle"> Professor </div>
      <div class="PromoVerticalImage-groups">Ancient Scripture</div>
      <div class="PromoVerticalImage-description"><p> 270G JSB </p></div>
      <div class="PromoVerticalImage-phoneNumber"><a href="tel:801-422-1234">801-422-1234</a></div>
    </div>
  </div>
  <div class="ListVerticalImage-items-item">
    <div class="PromoVerticalImage">
      <a class="Link" href="/jane-doe" data-cms-ai="0" aria-label="Jane Doe"><img src="/b.jpg"></a>
      <div class="PromoVerticalImage-jobTitle">Associate Professor</div>
      <div class="PromoVerticalImage-description"><p>Office hours by appointment</p></div>
    </div>
  </div>
  <div class="ListVerticalImage-items-item">
    <div class="PromoVerticalImage">
      <div class="PromoVerticalImage-jobTitle">Secretary</div>
      <a class="Link" href="/nameless">Profile</a>
    </div>
  </div>
</div>
</body></html>`
