package gareporter

// DeviceInfoProvider supplies the app and platform attributes that are sent with every hit.
//
// Empty strings are reported as "(not set)".
type DeviceInfoProvider interface {
	AppName() string
	// AppIdentifier is a reverse-DNS style identifier. It is also used as the hostname
	// of screen views, so it can be set to any value for privacy reasons.
	AppIdentifier() string
	AppVersion() string
	AppBuild() string
	// PreferredLanguages returns BCP 47 language tags in order of preference.
	PreferredLanguages() []string
	// ScreenSize returns ok == false when there is no screen.
	ScreenSize() (width, height int, ok bool)
	// UserAgent is the fallback user agent, available without blocking.
	UserAgent() string
	// VendorIdentifier returns a platform-assigned stable identifier, if there is one.
	VendorIdentifier() (string, bool)
}

// StaticDeviceInfo is a DeviceInfoProvider whose attributes are fixed when it is created.
type StaticDeviceInfo struct {
	Name         string
	Identifier   string
	Version      string
	Build        string
	Languages    []string
	ScreenWidth  int
	ScreenHeight int
	Agent        string
	VendorID     string
}

func (s StaticDeviceInfo) AppName() string { return s.Name }

func (s StaticDeviceInfo) AppIdentifier() string { return s.Identifier }

func (s StaticDeviceInfo) AppVersion() string { return s.Version }

func (s StaticDeviceInfo) AppBuild() string { return s.Build }

func (s StaticDeviceInfo) PreferredLanguages() []string { return s.Languages }

func (s StaticDeviceInfo) ScreenSize() (int, int, bool) {
	return s.ScreenWidth, s.ScreenHeight, s.ScreenWidth > 0 && s.ScreenHeight > 0
}

func (s StaticDeviceInfo) UserAgent() string { return s.Agent }

func (s StaticDeviceInfo) VendorIdentifier() (string, bool) {
	return s.VendorID, s.VendorID != ""
}
