package gareporter

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// machineIDPaths are checked in order for a host identifier to derive VendorIdentifier from.
var machineIDPaths = []string{"/etc/machine-id", "/var/lib/dbus/machine-id"}

// NewHostDeviceInfo describes the running Go program and the host it runs on.
//
// The app name is the executable name, the identifier and version come from the embedded
// module build info, and languages come from the POSIX locale environment. Hosts have no
// screen. The vendor identifier is a name-based UUID derived from the machine ID and the
// app identifier, so it is stable per app and does not expose the machine ID itself.
func NewHostDeviceInfo() DeviceInfoProvider {
	info := StaticDeviceInfo{
		Name:      strings.TrimSuffix(filepath.Base(os.Args[0]), ".exe"),
		Languages: preferredLanguagesFromEnv(os.Getenv),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.Identifier = bi.Main.Path
		info.Version = bi.Main.Version
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				info.Build = s.Value
			}
		}
	}
	info.Agent = "Mozilla/5.0 (" + osDescription() + ")"
	if info.Name != "" {
		info.Agent += " " + info.Name
		if info.Version != "" {
			info.Agent += "/" + info.Version
		}
	}
	if id, ok := readMachineID(); ok {
		info.VendorID = vendorIdentifier(id, info.Identifier)
	}
	return info
}

func vendorIdentifier(machineID, appIdentifier string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(appIdentifier+"/"+machineID)).String()
}

func readMachineID() (string, bool) {
	for _, p := range machineIDPaths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, true
		}
	}
	return "", false
}

// preferredLanguagesFromEnv reads LANGUAGE, LC_ALL, LC_MESSAGES and LANG, in that order,
// and converts POSIX locale names such as "en_US.UTF-8" to BCP 47 tags.
func preferredLanguagesFromEnv(getenv func(string) string) []string {
	var candidates []string
	candidates = append(candidates, strings.Split(getenv("LANGUAGE"), ":")...)
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		candidates = append(candidates, getenv(name))
	}

	var ret []string
	seen := make(map[string]struct{})
	for _, c := range candidates {
		tag, ok := parsePOSIXLocale(c)
		if !ok {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		ret = append(ret, tag)
	}
	return ret
}

func parsePOSIXLocale(s string) (string, bool) {
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "" || s == "C" || s == "POSIX" {
		return "", false
	}
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil || tag == language.Und {
		return "", false
	}
	return tag.String(), true
}
