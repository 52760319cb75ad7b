package gareporter

import (
	"sort"
	"strings"
)

// Measurement Protocol parameter names.
const (
	paramProtocolVersion  = "v"
	paramTrackingID       = "tid"
	paramClientID         = "cid"
	paramAppID            = "aid"
	paramAppName          = "an"
	paramAppVersion       = "av"
	paramUserAgent        = "ua"
	paramUserLanguage     = "ul"
	paramScreenResolution = "sr"
	paramHitType          = "t"
	paramAnonymizeIP      = "aip"

	paramDocumentHost  = "dh"
	paramDocumentPath  = "dp"
	paramDocumentTitle = "dt"
	paramSessionCtrl   = "sc"

	paramEventCategory = "ec"
	paramEventAction   = "ea"
	paramEventLabel    = "el"

	paramExceptionDesc  = "exd"
	paramExceptionFatal = "exf"

	paramTimingCategory = "utc"
	paramTimingVariable = "utv"
	paramTimingLabel    = "utl"
	paramTimingTime     = "utt"
)

// Hit types. Session hits have no type.
const (
	PageviewHitType  = "pageview"
	EventHitType     = "event"
	ExceptionHitType = "exception"
	TimingHitType    = "timing"
)

const protocolVersion = "1"

// ParameterSet is an insertion-ordered mapping of protocol keys to values. Setting an
// existing key replaces its value but keeps its original position.
type ParameterSet struct {
	keys   []string
	values map[string]string
}

// NewParameterSet returns an empty ParameterSet.
func NewParameterSet() *ParameterSet {
	return &ParameterSet{values: make(map[string]string)}
}

// Set adds or replaces a parameter.
func (p *ParameterSet) Set(key, value string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Merge sets every entry of m. Keys are applied in sorted order so that the result does
// not depend on map iteration order.
func (p *ParameterSet) Merge(m map[string]string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		p.Set(k, m[k])
	}
}

// MergeSet sets every entry of other, in other's order.
func (p *ParameterSet) MergeSet(other *ParameterSet) {
	for _, k := range other.keys {
		p.Set(k, other.values[k])
	}
}

// Get returns the value for key.
func (p *ParameterSet) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Keys returns the keys in order.
func (p *ParameterSet) Keys() []string {
	return append([]string(nil), p.keys...)
}

// Len returns the number of parameters.
func (p *ParameterSet) Len() int {
	return len(p.keys)
}

// hitContext is everything the merger needs besides the call's own parameters.
type hitContext struct {
	trackerID        string
	clientID         string
	appIdentifier    string
	appName          string
	formattedVersion string
	userAgent        string
	userLanguage     string
	screenResolution string
	customDimensions map[string]string
	anonymizeIP      bool
}

// mergeParameters combines the base parameters, hit type, custom dimensions, IP
// anonymization flag and call parameters, each overriding the ones before it.
func mergeParameters(hc hitContext, hitType string, call *ParameterSet) *ParameterSet {
	p := NewParameterSet()
	p.Set(paramProtocolVersion, protocolVersion)
	p.Set(paramTrackingID, hc.trackerID)
	p.Set(paramClientID, hc.clientID)
	p.Set(paramAppID, hc.appIdentifier)
	p.Set(paramAppName, hc.appName)
	p.Set(paramAppVersion, hc.formattedVersion)
	p.Set(paramUserAgent, hc.userAgent)
	p.Set(paramUserLanguage, hc.userLanguage)
	p.Set(paramScreenResolution, hc.screenResolution)

	if hitType != "" {
		p.Set(paramHitType, hitType)
	}
	p.Merge(hc.customDimensions)
	if hc.anonymizeIP {
		p.Set(paramAnonymizeIP, "1")
	}
	if call != nil {
		p.MergeSet(call)
	}
	return p
}

// callParameters builds a call's parameters: the caller's extra parameters first, then the
// operation's own fields, which take precedence over extras with the same key.
func callParameters(extra map[string]string, fields ...string) *ParameterSet {
	p := NewParameterSet()
	p.Merge(extra)
	for i := 0; i+1 < len(fields); i += 2 {
		p.Set(fields[i], fields[i+1])
	}
	return p
}

// screenPath turns a screen name into a page path: "Settings Page" becomes "/SettingsPage".
func screenPath(name string) string {
	return "/" + strings.ReplaceAll(name, " ", "")
}
