package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "sjsage522/dirscraper/pkg/errors"
)

func TestLedgerKey(t *testing.T) {
	key := LedgerKey("https://religion.example.edu/john smith")
	assert.True(t, strings.HasPrefix(key, "photo:"))
	assert.Len(t, key, len("photo:")+64)
	assert.NotContains(t, key, " ")
	assert.Equal(t, key, LedgerKey("https://religion.example.edu/john smith"))
	assert.NotEqual(t, key, LedgerKey("https://religion.example.edu/jane"))
}

func TestPhotoLedger(t *testing.T) {
	mock := NewMockCacheService()
	ledger := NewPhotoLedger(mock, time.Hour)
	page := "https://religion.example.edu/john"

	_, found, err := ledger.Lookup(page)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, ledger.Record(page, "photos/John Smith.jpg"))
	assert.Equal(t, time.Hour, mock.ttls[LedgerKey(page)])

	path, found, err := ledger.Lookup(page)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "photos/John Smith.jpg", path)

	require.NoError(t, ledger.Forget(page))
	_, found, err = ledger.Lookup(page)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPhotoLedgerLookupError(t *testing.T) {
	mock := NewMockCacheService()
	mock.getErr = errUnavailable

	_, _, err := NewPhotoLedger(mock, time.Hour).Lookup("https://example.edu/x")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeCache))
	assert.ErrorIs(t, err, errUnavailable)
}
