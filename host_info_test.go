package gareporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeEnv(vars map[string]string) func(string) string {
	return func(name string) string { return vars[name] }
}

func TestPreferredLanguagesFromEnv(t *testing.T) {
	langs := preferredLanguagesFromEnv(fakeEnv(map[string]string{
		"LANGUAGE": "fr_CA:fr",
		"LC_ALL":   "",
		"LANG":     "en_US.UTF-8",
	}))
	assert.Equal(t, []string{"fr-CA", "fr", "en-US"}, langs)
}

func TestPreferredLanguagesSkipsPOSIXAndDuplicates(t *testing.T) {
	langs := preferredLanguagesFromEnv(fakeEnv(map[string]string{
		"LC_ALL":      "C",
		"LC_MESSAGES": "de_DE@euro",
		"LANG":        "de_DE.UTF-8",
	}))
	assert.Equal(t, []string{"de-DE"}, langs)
}

func TestPreferredLanguagesEmpty(t *testing.T) {
	assert.Empty(t, preferredLanguagesFromEnv(fakeEnv(nil)))
}

func TestParsePOSIXLocale(t *testing.T) {
	for input, expected := range map[string]string{
		"en_US.UTF-8": "en-US",
		"pt_BR":       "pt-BR",
		"zh_Hant_TW":  "zh-Hant-TW",
		"sr_RS@latin": "sr-RS",
		"ja":          "ja",
	} {
		tag, ok := parsePOSIXLocale(input)
		assert.True(t, ok, input)
		assert.Equal(t, expected, tag, input)
	}
	for _, input := range []string{"", "C", "POSIX", "C.UTF-8", "not a locale!"} {
		_, ok := parsePOSIXLocale(input)
		assert.False(t, ok, input)
	}
}

func TestVendorIdentifierIsStableAndScopedToApp(t *testing.T) {
	a := vendorIdentifier("0123456789abcdef", "com.example.a")
	assert.Equal(t, a, vendorIdentifier("0123456789abcdef", "com.example.a"))
	assert.NotEqual(t, a, vendorIdentifier("0123456789abcdef", "com.example.b"))
	assert.NotContains(t, a, "0123456789abcdef")

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), parsed.Version())
}

func TestReadMachineID(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "machine-id")
	require.NoError(t, os.WriteFile(present, []byte("abc123\n"), 0o600))

	saved := machineIDPaths
	defer func() { machineIDPaths = saved }()

	machineIDPaths = []string{filepath.Join(dir, "missing"), present}
	id, ok := readMachineID()
	assert.True(t, ok)
	assert.Equal(t, "abc123", id)

	machineIDPaths = []string{filepath.Join(dir, "missing")}
	_, ok = readMachineID()
	assert.False(t, ok)
}

func TestHostDeviceInfo(t *testing.T) {
	info := NewHostDeviceInfo()
	assert.NotEmpty(t, info.AppName())
	assert.Contains(t, info.UserAgent(), "Mozilla/5.0 (")
	_, _, ok := info.ScreenSize()
	assert.False(t, ok)
}

func TestStaticDeviceInfo(t *testing.T) {
	info := basicDeviceInfo()
	w, h, ok := info.ScreenSize()
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)
	assert.True(t, ok)

	id, ok := info.VendorIdentifier()
	assert.Equal(t, "vendor-id", id)
	assert.True(t, ok)

	_, ok = StaticDeviceInfo{}.VendorIdentifier()
	assert.False(t, ok)
}
