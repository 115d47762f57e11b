package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempCachePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "probes.json")
}

func TestStore_MissOnEmpty(t *testing.T) {
	store := Open(tempCachePath(t), 0)

	_, ok := store.GetQuotas("us-east-1")
	assert.False(t, ok)
	_, ok = store.GetZones("us-east-1")
	assert.False(t, ok)
}

func TestStore_PutGetRoundTrip(t *testing.T) {
	store := Open(tempCachePath(t), 0)

	store.PutQuotas("us-east-1", map[string]float64{"L-3819A6DF": 8})
	store.PutZones("us-east-1", []string{"us-east-1a"})

	quotas, ok := store.GetQuotas("us-east-1")
	require.True(t, ok)
	assert.Equal(t, map[string]float64{"L-3819A6DF": 8}, quotas)

	zones, ok := store.GetZones("us-east-1")
	require.True(t, ok)
	assert.Equal(t, []string{"us-east-1a"}, zones)
}

func TestStore_EmptyQuotaTableIsAValidHit(t *testing.T) {
	store := Open(tempCachePath(t), 0)

	store.PutQuotas("ap-south-1", map[string]float64{})

	quotas, ok := store.GetQuotas("ap-south-1")
	assert.True(t, ok)
	assert.Empty(t, quotas)
}

func TestStore_PersistsAcrossOpens(t *testing.T) {
	path := tempCachePath(t)

	Open(path, 0).PutQuotas("us-west-2", map[string]float64{"L-7212CCBC": 16})

	reopened := Open(path, 0)
	quotas, ok := reopened.GetQuotas("us-west-2")
	require.True(t, ok)
	assert.Equal(t, map[string]float64{"L-7212CCBC": 16}, quotas)
}

func TestStore_TTLExpiry(t *testing.T) {
	store := Open(tempCachePath(t), time.Hour)
	store.PutQuotas("us-east-1", map[string]float64{"L-3819A6DF": 8})

	current := time.Now()
	store.now = func() time.Time { return current.Add(2 * time.Hour) }

	_, ok := store.GetQuotas("us-east-1")
	assert.False(t, ok)
}

func TestOpen_CorruptFileStartsEmpty(t *testing.T) {
	path := tempCachePath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := Open(path, 0)

	_, ok := store.GetQuotas("us-east-1")
	assert.False(t, ok)
	// And it remains usable.
	store.PutQuotas("us-east-1", map[string]float64{"L-3819A6DF": 4})
	_, ok = store.GetQuotas("us-east-1")
	assert.True(t, ok)
}
