package gareporter

import (
	"sync"

	"github.com/google/uuid"
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
)

// identityStore resolves the anonymous client ID (cid) once and caches it.
type identityStore struct {
	store      KeyValueStore
	deviceInfo DeviceInfoProvider
	resolved   string
	lock       sync.Mutex
}

func newIdentityStore(store KeyValueStore, deviceInfo DeviceInfoProvider) *identityStore {
	return &identityStore{store: store, deviceInfo: deviceInfo}
}

// identifier returns the cached client ID, resolving it on the first call. The vendor
// identifier flag only matters for that first call.
func (s *identityStore) identifier(usesVendorIdentifier bool, loggers ldlog.Loggers) string {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.resolved == "" {
		s.resolved = s.resolve(usesVendorIdentifier, loggers)
	}
	return s.resolved
}

func (s *identityStore) resolve(usesVendorIdentifier bool, loggers ldlog.Loggers) string {
	if usesVendorIdentifier {
		if id, ok := s.deviceInfo.VendorIdentifier(); ok && id != "" {
			return id
		}
		loggers.Debug("Vendor identifier is not available; using a generated client ID")
	}

	id, ok, err := s.store.Get(IdentifierKey)
	if err != nil {
		loggers.Warnf("Failed to read stored client ID, generating a new one: %s", err)
	} else if ok && id != "" {
		return id
	}

	id = uuid.New().String()
	if err := s.store.Set(IdentifierKey, id); err != nil {
		loggers.Warn((&PersistenceError{Key: IdentifierKey, Err: err}).Error())
	}
	loggers.Infof("New GA user with identifier: %s", id)
	return id
}
