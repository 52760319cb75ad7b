package gareporter

import (
	"maps"
	"strconv"
	"sync"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// Reporter sends sessions, screen views, events, exceptions and timings to Google Analytics
// using the Measurement Protocol.
//
// Screen views are reported as pageviews, with the app identifier as the hostname, so the
// tracking property must be set up as a website property.
//
// A tracker ID must be set with Configure before anything is reported; until then every
// tracking call is dropped with a warning. Tracking methods never block on the network and
// never return errors. All methods are safe to call from multiple goroutines.
type Reporter struct {
	loggers  ldlog.Loggers
	encoder  requestEncoder
	identity *identityStore
	snapshot *contextSnapshot
	sender   *dispatcher

	trackerID            ldvalue.OptionalString
	quietMode            bool
	anonymizeIP          bool
	optedOut             bool
	usesVendorIdentifier bool
	customDimensions     map[string]string
	lock                 sync.RWMutex
}

// NewReporter creates a Reporter in the unconfigured state.
func NewReporter(config Configuration) *Reporter {
	config = config.withDefaults()
	return &Reporter{
		loggers:              config.Loggers,
		encoder:              requestEncoder{baseURI: config.BaseURI},
		identity:             newIdentityStore(config.Store, config.DeviceInfo),
		snapshot:             newContextSnapshot(config.DeviceInfo, config.UserAgentProbe, config.Loggers),
		sender:               newDispatcher(config.HTTPClient),
		quietMode:            !config.Verbose,
		anonymizeIP:          !config.DisableIPAnonymization,
		optedOut:             config.OptedOut,
		usesVendorIdentifier: config.UsesVendorIdentifier,
		customDimensions:     maps.Clone(config.CustomDimensions),
	}
}

// Configure sets the Google Analytics tracker ID, of the form UA-XXXXX-XX. Once a tracker
// ID is set the reporter stays configured; an empty ID is ignored.
func (r *Reporter) Configure(trackerID string) {
	if trackerID == "" {
		r.loggers.Warn("Ignoring empty tracker ID")
		return
	}
	r.lock.Lock()
	r.trackerID = ldvalue.NewOptionalString(trackerID)
	r.lock.Unlock()
}

// IsConfigured returns true if a tracker ID has been set.
func (r *Reporter) IsConfigured() bool {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.trackerID.IsDefined()
}

// SetQuietMode determines whether diagnostics about hits are suppressed. Reporters are
// quiet by default.
func (r *Reporter) SetQuietMode(quiet bool) {
	r.lock.Lock()
	r.quietMode = quiet
	r.lock.Unlock()
}

// QuietMode returns the current quiet mode setting.
func (r *Reporter) QuietMode() bool {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.quietMode
}

// SetAnonymizeIP determines whether hits ask Google Analytics to anonymize the sender's
// IP address. This is on by default.
func (r *Reporter) SetAnonymizeIP(anonymize bool) {
	r.lock.Lock()
	r.anonymizeIP = anonymize
	r.lock.Unlock()
}

// AnonymizeIP returns the current IP anonymization setting.
func (r *Reporter) AnonymizeIP() bool {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.anonymizeIP
}

// SetOptedOut records whether the user opted out of analytics. Nothing is sent while
// opted out.
func (r *Reporter) SetOptedOut(optedOut bool) {
	r.lock.Lock()
	r.optedOut = optedOut
	r.lock.Unlock()
}

// OptedOut returns the current opt-out setting.
func (r *Reporter) OptedOut() bool {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.optedOut
}

// SetUsesVendorIdentifier determines whether the platform's vendor identifier is used as
// the client ID instead of a generated UUID. It has no effect once the client ID has
// been resolved.
func (r *Reporter) SetUsesVendorIdentifier(uses bool) {
	r.lock.Lock()
	r.usesVendorIdentifier = uses
	r.lock.Unlock()
}

// UsesVendorIdentifier returns the current vendor identifier setting.
func (r *Reporter) UsesVendorIdentifier() bool {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.usesVendorIdentifier
}

// SetCustomDimensions replaces the parameters added to every hit, such as custom
// dimensions (cd1, cd2, ...). Parameters passed to a tracking call take precedence.
func (r *Reporter) SetCustomDimensions(dimensions map[string]string) {
	dimensions = maps.Clone(dimensions)
	r.lock.Lock()
	r.customDimensions = dimensions
	r.lock.Unlock()
}

// CustomDimensions returns a copy of the parameters added to every hit.
func (r *Reporter) CustomDimensions() map[string]string {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return maps.Clone(r.customDimensions)
}

// UserAgent returns the user agent currently sent with hits.
func (r *Reporter) UserAgent() string {
	return r.snapshot.UserAgent()
}

// ScreenView reports a screen view as a pageview. The screen name is the document title,
// and also the page path with spaces removed: "Settings Page" has the path "/SettingsPage".
func (r *Reporter) ScreenView(name string, parameters map[string]string) {
	r.send(PageviewHitType, callParameters(parameters,
		paramDocumentHost, r.snapshot.AppIdentifier(),
		paramDocumentPath, screenPath(name),
		paramDocumentTitle, name,
	))
}

// Session reports the start (start == true) or end of a session. The page path is set to
// the app name.
func (r *Reporter) Session(start bool, parameters map[string]string) {
	control := "end"
	if start {
		control = "start"
	}
	r.send("", callParameters(parameters,
		paramSessionCtrl, control,
		paramDocumentPath, r.snapshot.AppName(),
	))
}

// Event reports an event with a category, action and optional label.
func (r *Reporter) Event(category, action, label string, parameters map[string]string) {
	r.send(EventHitType, callParameters(parameters,
		paramEventCategory, category,
		paramEventAction, action,
		paramEventLabel, label,
	))
}

// Exception reports an exception and whether it was fatal.
func (r *Reporter) Exception(description string, isFatal bool, parameters map[string]string) {
	r.send(ExceptionHitType, callParameters(parameters,
		paramExceptionDesc, description,
		paramExceptionFatal, strconv.FormatBool(isFatal),
	))
}

// Timing reports a user timing. The duration is sent in whole milliseconds.
func (r *Reporter) Timing(category, name, label string, d time.Duration, parameters map[string]string) {
	r.send(TimingHitType, callParameters(parameters,
		paramTimingCategory, category,
		paramTimingVariable, name,
		paramTimingLabel, label,
		paramTimingTime, strconv.FormatInt(d.Milliseconds(), 10),
	))
}

// Close waits for hits that are already being delivered and stops sending new ones.
func (r *Reporter) Close() error {
	r.sender.close()
	return nil
}

// diagnostics returns the loggers for messages that quiet mode suppresses.
func (r *Reporter) diagnostics(quiet bool) ldlog.Loggers {
	if quiet {
		return ldlog.NewDisabledLoggers()
	}
	return r.loggers
}

func (r *Reporter) send(hitType string, call *ParameterSet) {
	params, quiet, err := r.buildParameters(hitType, call)
	switch err {
	case nil:
	case ErrNotConfigured:
		r.loggers.Warnf("Analytics %s hit ignored: %s", hitTypeName(hitType), err)
		return
	default:
		r.diagnostics(quiet).Infof("Analytics %s hit ignored: %s", hitTypeName(hitType), err)
		return
	}
	loggers := r.diagnostics(quiet)

	u, err := r.encoder.encode(params)
	if err != nil {
		loggers.Errorf("Failed to generate a valid GA URL: %s", err)
		return
	}
	loggers.Infof("Sending GA report: %s", u)
	ua, _ := params.Get(paramUserAgent)
	r.sender.send(u, ua, loggers)
}

// buildParameters merges the call's parameters with everything the reporter adds to each
// hit, or returns ErrOptedOut or ErrNotConfigured.
func (r *Reporter) buildParameters(hitType string, call *ParameterSet) (*ParameterSet, bool, error) {
	r.lock.RLock()
	trackerID, configured := r.trackerID.Get()
	quiet := r.quietMode
	optedOut := r.optedOut
	usesVendorIdentifier := r.usesVendorIdentifier
	anonymizeIP := r.anonymizeIP
	customDimensions := r.customDimensions
	r.lock.RUnlock()

	if optedOut {
		return nil, quiet, ErrOptedOut
	}
	if !configured {
		return nil, quiet, ErrNotConfigured
	}

	hc := hitContext{
		trackerID:        trackerID,
		clientID:         r.identity.identifier(usesVendorIdentifier, r.diagnostics(quiet)),
		appIdentifier:    r.snapshot.AppIdentifier(),
		appName:          r.snapshot.AppName(),
		formattedVersion: r.snapshot.FormattedVersion(),
		userAgent:        r.snapshot.UserAgent(),
		userLanguage:     r.snapshot.UserLanguage(),
		screenResolution: r.snapshot.ScreenResolution(),
		customDimensions: customDimensions,
		anonymizeIP:      anonymizeIP,
	}
	return mergeParameters(hc, hitType, call), quiet, nil
}

func hitTypeName(hitType string) string {
	if hitType == "" {
		return "session"
	}
	return hitType
}
