package gareporter

import (
	"errors"
	"net/http"
	"net/url"
	"sync"
	"testing"

	"github.com/launchdarkly/go-sdk-common/v3/ldlogtest"
	"github.com/launchdarkly/go-test-helpers/v3/httphelpers"
	"github.com/stretchr/testify/require"
)

const (
	fakeBaseURI   = "https://fake-server/"
	testTrackerID = "UA-1-1"
)

func basicDeviceInfo() StaticDeviceInfo {
	return StaticDeviceInfo{
		Name:         "Example",
		Identifier:   "com.example.app",
		Version:      "1.2",
		Build:        "34",
		Languages:    []string{"en-US", "fr"},
		ScreenWidth:  1920,
		ScreenHeight: 1080,
		Agent:        "Mozilla/5.0 (Test)",
		VendorID:     "vendor-id",
	}
}

type reporterFixture struct {
	reporter   *Reporter
	store      *MemoryStore
	mockLog    *ldlogtest.MockLog
	requestsCh <-chan httphelpers.HTTPRequestInfo
}

// newReporterFixture creates a verbose, unconfigured Reporter whose requests are recorded.
func newReporterFixture(modify func(*Configuration)) reporterFixture {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	f := reporterFixture{
		store:      NewMemoryStore(),
		mockLog:    ldlogtest.NewMockLog(),
		requestsCh: requestsCh,
	}
	config := Configuration{
		BaseURI:    fakeBaseURI,
		HTTPClient: httphelpers.ClientFromHandler(handler),
		Store:      f.store,
		DeviceInfo: basicDeviceInfo(),
		Loggers:    f.mockLog.Loggers,
		Verbose:    true,
	}
	if modify != nil {
		modify(&config)
	}
	f.reporter = NewReporter(config)
	return f
}

func newConfiguredReporterFixture(modify func(*Configuration)) reporterFixture {
	f := newReporterFixture(modify)
	f.reporter.Configure(testTrackerID)
	return f
}

// closeAndGetRequests waits for all hits to be delivered and returns the recorded requests.
func (f reporterFixture) closeAndGetRequests(t *testing.T) []httphelpers.HTTPRequestInfo {
	require.NoError(t, f.reporter.Close())
	var ret []httphelpers.HTTPRequestInfo
	for len(f.requestsCh) > 0 {
		ret = append(ret, <-f.requestsCh)
	}
	return ret
}

// closeAndGetQuery expects exactly one request and returns its decoded query.
func (f reporterFixture) closeAndGetQuery(t *testing.T) url.Values {
	requests := f.closeAndGetRequests(t)
	require.Len(t, requests, 1)
	require.Equal(t, http.MethodGet, requests[0].Request.Method)
	require.Equal(t, "/collect", requests[0].Request.URL.Path)
	q, err := url.ParseQuery(requests[0].Request.URL.RawQuery)
	require.NoError(t, err)
	return q
}

type httpClientFunc func(*http.Request) (*http.Response, error)

func (f httpClientFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

var errFakeStore = errors.New("sorry, the disk is full")

// failingStore counts calls and can be made to fail reads or writes.
type failingStore struct {
	delegate  KeyValueStore
	failGets  bool
	failSets  bool
	getCount  int
	setCount  int
	countLock sync.Mutex
}

func (s *failingStore) Get(key string) (string, bool, error) {
	s.countLock.Lock()
	s.getCount++
	s.countLock.Unlock()
	if s.failGets {
		return "", false, errFakeStore
	}
	return s.delegate.Get(key)
}

func (s *failingStore) Set(key, value string) error {
	s.countLock.Lock()
	s.setCount++
	s.countLock.Unlock()
	if s.failSets {
		return errFakeStore
	}
	return s.delegate.Set(key, value)
}

func (s *failingStore) counts() (int, int) {
	s.countLock.Lock()
	defer s.countLock.Unlock()
	return s.getCount, s.setCount
}
