package gareporter

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
)

// dispatcher delivers hits in the background. It never retries, and no result is returned
// to the caller; failures are only logged.
type dispatcher struct {
	client   HTTPClient
	inFlight sync.WaitGroup
	closed   bool
	lock     sync.Mutex
}

func newDispatcher(client HTTPClient) *dispatcher {
	return &dispatcher{client: client}
}

// send starts delivery of u and returns immediately. userAgent, if not empty, is also sent
// as the User-Agent header.
func (d *dispatcher) send(u *url.URL, userAgent string, loggers ldlog.Loggers) {
	d.lock.Lock()
	if d.closed {
		d.lock.Unlock()
		loggers.Debugf("Reporter is closed; not sending %s", u)
		return
	}
	d.inFlight.Add(1)
	d.lock.Unlock()

	go func() {
		defer d.inFlight.Done()
		d.deliver(u, userAgent, loggers)
	}()
}

func (d *dispatcher) deliver(u *url.URL, userAgent string, loggers ldlog.Loggers) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, u.String(), nil)
	if err != nil {
		loggers.Warnf("Failed to deliver GA request: %s", err)
		return
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		loggers.Warnf("Failed to deliver GA request: %s", err)
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		loggers.Warnf("GA request was rejected with status %d", resp.StatusCode)
	}
}

// close stops accepting hits and waits for the ones already started.
func (d *dispatcher) close() {
	d.lock.Lock()
	d.closed = true
	d.lock.Unlock()
	d.inFlight.Wait()
}
