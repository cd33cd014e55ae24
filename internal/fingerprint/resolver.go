package fingerprint

import (
	"fmt"
	"strings"
)

// Constraints carries optional caller pins. Empty fields are resolved at
// random; set fields are honoured or rejected, never overridden.
type Constraints struct {
	DeviceType string
	Browser    string
	OS         string
}

// resolved is the concrete device/OS/browser selection everything else is
// derived from.
type resolved struct {
	deviceType     string
	osKey          string
	osVersion      string
	platform       string
	browserKey     string
	browserVersion string
}

var (
	desktopSystems = []string{"windows", "macos", "linux"}
	mobileSystems  = []string{"android", "ios"}
)

// browsersFor returns the browser keys an OS admits, or nil when the OS
// places no restriction.
func browsersFor(osKey string) []string {
	switch osKey {
	case "ios":
		return []string{"safari"}
	case "android":
		return []string{"chrome", "firefox"}
	default:
		return nil
	}
}

func browserAllowedOn(osKey, browserKey string) bool {
	allowed := browsersFor(osKey)
	if allowed == nil {
		return true
	}
	for _, b := range allowed {
		if b == browserKey {
			return true
		}
	}
	return false
}

func isMobileClass(device string) bool {
	return device == DeviceMobile || device == DeviceTablet
}

func isMobileOS(osKey string) bool {
	return osKey == "android" || osKey == "ios"
}

// canonicalDevice matches a caller-supplied device class case-insensitively
// against the known classes.
func canonicalDevice(device string) (string, bool) {
	for _, d := range DeviceClasses {
		if strings.EqualFold(device, d) {
			return d, true
		}
	}
	return "", false
}

// Validate checks the pins against the catalog and the pairing rules
// without consuming entropy. It reports the same errors a Generate call
// would, which lets callers fail fast before spawning batch workers.
func (c Constraints) Validate(cat *Catalog) error {
	device := ""
	if c.DeviceType != "" {
		d, ok := canonicalDevice(c.DeviceType)
		if !ok {
			return fmt.Errorf("%w: unknown device type %q", ErrInvalidArgument, c.DeviceType)
		}
		device = d
	}

	osKey := strings.ToLower(c.OS)
	if osKey != "" {
		if _, ok := cat.OperatingSystems[osKey]; !ok {
			return fmt.Errorf("%w: unknown OS %q", ErrInvalidArgument, c.OS)
		}
		if device != "" && isMobileClass(device) != isMobileOS(osKey) {
			return fmt.Errorf("%w: OS %q cannot run on a %s device", ErrConstraintConflict, osKey, device)
		}
	}

	browserKey := strings.ToLower(c.Browser)
	if browserKey != "" {
		if _, ok := cat.Browsers[browserKey]; !ok {
			return fmt.Errorf("%w: unknown browser %q", ErrInvalidArgument, c.Browser)
		}
		if osKey != "" && !browserAllowedOn(osKey, browserKey) {
			return fmt.Errorf("%w: browser %q is not available on %s", ErrConstraintConflict, browserKey, osKey)
		}
		if osKey == "" && device != "" && isMobileClass(device) {
			// A mobile-class device must land on android or ios; the pinned
			// browser has to be viable on at least one of them.
			if !browserAllowedOn("android", browserKey) && !browserAllowedOn("ios", browserKey) {
				return fmt.Errorf("%w: browser %q has no compatible OS on a %s device", ErrConstraintConflict, browserKey, device)
			}
		}
	}
	return nil
}

// resolve runs the selection cascade: device class, then OS (version and
// platform), then browser (version). Pinned values are validated first so
// a conflict never consumes entropy.
func (g *Generator) resolve(c Constraints) (resolved, error) {
	if err := c.Validate(g.catalog); err != nil {
		return resolved{}, err
	}

	var r resolved

	if c.DeviceType != "" {
		r.deviceType, _ = canonicalDevice(c.DeviceType)
	} else {
		r.deviceType = pick(g.rnd, DeviceClasses)
	}

	browserKey := strings.ToLower(c.Browser)

	if c.OS != "" {
		r.osKey = strings.ToLower(c.OS)
	} else {
		candidates := desktopSystems
		if isMobileClass(r.deviceType) {
			candidates = mobileSystems
		}
		if browserKey != "" {
			// Keep the random OS draw consistent with the pinned browser
			// so android never ends up paired with Safari.
			var compatible []string
			for _, osKey := range candidates {
				if browserAllowedOn(osKey, browserKey) {
					compatible = append(compatible, osKey)
				}
			}
			if len(compatible) == 0 {
				return resolved{}, fmt.Errorf("%w: browser %q has no compatible OS on a %s device",
					ErrConstraintConflict, browserKey, r.deviceType)
			}
			candidates = compatible
		}
		r.osKey = pick(g.rnd, candidates)
	}

	osEntry := g.catalog.OperatingSystems[r.osKey]
	r.osVersion = pick(g.rnd, osEntry.Versions)
	r.platform = pick(g.rnd, osEntry.Platforms)

	if browserKey != "" {
		r.browserKey = browserKey
	} else {
		switch r.osKey {
		case "ios":
			r.browserKey = "safari"
		case "android":
			r.browserKey = pick(g.rnd, []string{"chrome", "firefox"})
		default:
			r.browserKey = pick(g.rnd, g.catalog.browserKeys)
		}
	}

	r.browserVersion = pick(g.rnd, g.catalog.Browsers[r.browserKey].Versions)
	return r, nil
}
