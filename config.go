package gareporter

import (
	"context"
	"net/http"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
)

// DefaultBaseURI is the Measurement Protocol origin that hits are resolved against.
const DefaultBaseURI = "https://www.google-analytics.com/"

// IdentifierKey is the KeyValueStore key under which the anonymous client ID is persisted.
const IdentifierKey = "gareporter.uniqueUserIdentifier"

// HTTPClient is the transport used to deliver hits. *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// KeyValueStore is persistent storage for the anonymous client ID.
//
// Get returns ok == false, with a nil error, when the key has never been written.
type KeyValueStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// UserAgentProbe resolves a more accurate user agent string than the one DeviceInfoProvider
// returns synchronously. It runs at most once per Reporter, in the background.
type UserAgentProbe func(ctx context.Context) (string, error)

// Configuration contains parameters for NewReporter. Zero values select the defaults.
type Configuration struct {
	// BaseURI is the origin that "collect?..." is resolved against. Defaults to DefaultBaseURI.
	BaseURI string
	// HTTPClient delivers hits. Defaults to http.DefaultClient.
	HTTPClient HTTPClient
	// Store persists the anonymous client ID. Defaults to a MemoryStore, which only lasts
	// for the life of the process.
	Store KeyValueStore
	// DeviceInfo supplies app and platform attributes. Defaults to NewHostDeviceInfo().
	DeviceInfo DeviceInfoProvider
	// UserAgentProbe, if set, replaces the synchronous user agent once it resolves.
	UserAgentProbe UserAgentProbe
	// Loggers is where diagnostics are written. The zero value behaves like
	// ldlog.NewDefaultLoggers().
	Loggers ldlog.Loggers
	// Verbose disables quiet mode from the start. Reporters are quiet by default.
	Verbose bool
	// DisableIPAnonymization turns off the aip=1 parameter, which is sent by default.
	DisableIPAnonymization bool
	// UsesVendorIdentifier prefers DeviceInfo.VendorIdentifier over a generated client ID.
	UsesVendorIdentifier bool
	// OptedOut starts the reporter in the opted-out state.
	OptedOut bool
	// CustomDimensions are added to every hit, e.g. {"cd1": "premium"}.
	CustomDimensions map[string]string
}

func (c Configuration) withDefaults() Configuration {
	if c.BaseURI == "" {
		c.BaseURI = DefaultBaseURI
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.Store == nil {
		c.Store = NewMemoryStore()
	}
	if c.DeviceInfo == nil {
		c.DeviceInfo = NewHostDeviceInfo()
	}
	return c
}
