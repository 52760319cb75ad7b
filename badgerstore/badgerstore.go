// Package badgerstore provides a gareporter.KeyValueStore backed by BadgerDB, for programs
// that already keep local state in a Badger database or want crash-safe writes.
package badgerstore

import (
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
)

const keyPrefix = "gareporter/"

// Config holds BadgerDB settings for Open.
type Config struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string
	// InMemory keeps the database in memory, for testing.
	InMemory bool
	// Loggers receives BadgerDB's own log output. Badger is very chatty at Info level, so
	// its Info and Debug messages are logged at Debug.
	Loggers ldlog.Loggers
}

// Store is a KeyValueStore backed by BadgerDB. Keys are namespaced so the database can be
// shared with other data.
type Store struct {
	db    *badger.DB
	owned bool
}

// Open opens (or creates) a Badger database and returns a Store that owns it.
func Open(cfg Config) (*Store, error) {
	opts := badger.DefaultOptions(cfg.Path).
		WithInMemory(cfg.InMemory).
		WithNumVersionsToKeep(1).
		WithLogger(badgerLogger{cfg.Loggers})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, owned: true}, nil
}

// New wraps an already open database. Close does not close it.
func New(db *badger.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(key string) (string, bool, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(value), true, nil
}

func (s *Store) Set(key, value string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+key), []byte(value))
	})
}

// Close closes the database if the Store opened it.
func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}

// badgerLogger adapts ldlog.Loggers to badger.Logger.
type badgerLogger struct {
	loggers ldlog.Loggers
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.loggers.Errorf("badger: "+format, args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.loggers.Warnf("badger: "+format, args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.loggers.Debugf("badger: "+format, args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.loggers.Debugf("badger: "+format, args...)
}
