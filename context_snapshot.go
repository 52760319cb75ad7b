package gareporter

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
)

const notSet = "(not set)"

// contextSnapshot holds the app and platform attributes sent with every hit. They are read
// from the DeviceInfoProvider once, on first use.
type contextSnapshot struct {
	deviceInfo DeviceInfoProvider
	probe      UserAgentProbe
	loggers    ldlog.Loggers

	once             sync.Once
	appName          string
	appIdentifier    string
	appVersion       string
	formattedVersion string
	userLanguage     string
	screenResolution string
	userAgent        atomic.Pointer[string]
	probeDone        chan struct{}
}

func newContextSnapshot(deviceInfo DeviceInfoProvider, probe UserAgentProbe, loggers ldlog.Loggers) *contextSnapshot {
	return &contextSnapshot{
		deviceInfo: deviceInfo,
		probe:      probe,
		loggers:    loggers,
		probeDone:  make(chan struct{}),
	}
}

func (c *contextSnapshot) load() {
	c.once.Do(func() {
		d := c.deviceInfo
		c.appName = orNotSet(d.AppName())
		c.appIdentifier = orNotSet(d.AppIdentifier())
		c.appVersion = orNotSet(d.AppVersion())
		c.formattedVersion = c.appVersion + " (" + orNotSet(d.AppBuild()) + ")"

		c.userLanguage = notSet
		if langs := d.PreferredLanguages(); len(langs) > 0 && langs[0] != "" {
			c.userLanguage = langs[0]
		}

		c.screenResolution = notSet
		if w, h, ok := d.ScreenSize(); ok {
			c.screenResolution = strconv.Itoa(w) + "x" + strconv.Itoa(h)
		}

		ua := orNotSet(d.UserAgent())
		c.userAgent.Store(&ua)
		if c.probe != nil {
			go c.runProbe()
		} else {
			close(c.probeDone)
		}
	})
}

// runProbe replaces the fallback user agent if the probe succeeds. Hits built while it is
// running use the fallback.
func (c *contextSnapshot) runProbe() {
	defer close(c.probeDone)
	ua, err := c.probe(context.Background())
	if err != nil {
		c.loggers.Debugf("User agent probe failed, keeping fallback: %s", err)
		return
	}
	if ua != "" {
		c.userAgent.Store(&ua)
	}
}

func (c *contextSnapshot) AppName() string {
	c.load()
	return c.appName
}

func (c *contextSnapshot) AppIdentifier() string {
	c.load()
	return c.appIdentifier
}

func (c *contextSnapshot) AppVersion() string {
	c.load()
	return c.appVersion
}

func (c *contextSnapshot) FormattedVersion() string {
	c.load()
	return c.formattedVersion
}

func (c *contextSnapshot) UserLanguage() string {
	c.load()
	return c.userLanguage
}

func (c *contextSnapshot) ScreenResolution() string {
	c.load()
	return c.screenResolution
}

func (c *contextSnapshot) UserAgent() string {
	c.load()
	return *c.userAgent.Load()
}

func orNotSet(s string) string {
	if s == "" {
		return notSet
	}
	return s
}
