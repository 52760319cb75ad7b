package badgerstore

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore(t *testing.T) {
	s, err := Open(Config{InMemory: true, Loggers: ldlog.NewDisabledLoggers()})
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get("key")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("key", "value"))
	v, ok, err := s.Get("key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", v)

	require.NoError(t, s.Set("key", "replaced"))
	v, _, _ = s.Get("key")
	assert.Equal(t, "replaced", v)
}

func TestValuesSurviveReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(Config{Path: dir, Loggers: ldlog.NewDisabledLoggers()})
	require.NoError(t, err)
	require.NoError(t, s.Set("gareporter.uniqueUserIdentifier", "abc-123"))
	require.NoError(t, s.Close())

	s, err = Open(Config{Path: dir, Loggers: ldlog.NewDisabledLoggers()})
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get("gareporter.uniqueUserIdentifier")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc-123", v)
}

func TestKeysAreNamespaced(t *testing.T) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	defer db.Close()

	s := New(db)
	require.NoError(t, s.Set("key", "value"))
	require.NoError(t, s.Close())

	err = db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte("gareporter/key"))
		return err
	})
	assert.NoError(t, err)
}
