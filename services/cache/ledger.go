package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	apperrors "sjsage522/dirscraper/pkg/errors"
)

// PhotoLedger remembers which employee pages already had their photo
// downloaded, so repeated runs can skip them
type PhotoLedger struct {
	cache CacheService
	ttl   time.Duration
}

// NewPhotoLedger creates a ledger on top of any CacheService
func NewPhotoLedger(cache CacheService, ttl time.Duration) *PhotoLedger {
	return &PhotoLedger{cache: cache, ttl: ttl}
}

// LedgerKey maps a page URL to a memcache-safe key
func LedgerKey(pageURL string) string {
	sum := sha256.Sum256([]byte(pageURL))
	return "photo:" + hex.EncodeToString(sum[:])
}

// Lookup returns the stored photo path for pageURL. A miss is not an error.
func (l *PhotoLedger) Lookup(pageURL string) (path string, found bool, err error) {
	value, err := l.cache.Get(LedgerKey(pageURL))
	if errors.Is(err, ErrMiss) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperrors.NewCache(pageURL, "ledger lookup failed", err)
	}
	return string(value), true, nil
}

// Record stores the photo path written for pageURL
func (l *PhotoLedger) Record(pageURL, path string) error {
	if err := l.cache.Set(LedgerKey(pageURL), []byte(path), l.ttl); err != nil {
		return apperrors.NewCache(pageURL, "ledger record failed", err)
	}
	return nil
}

// Forget drops pageURL from the ledger
func (l *PhotoLedger) Forget(pageURL string) error {
	if err := l.cache.Delete(LedgerKey(pageURL)); err != nil {
		return apperrors.NewCache(pageURL, "ledger forget failed", err)
	}
	return nil
}
