package fingerprint

import (
	"strings"
	"testing"
)

func TestDefaultCatalogLoads(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("failed to load embedded catalog: %v", err)
	}
	if len(cat.Browsers) == 0 || len(cat.OperatingSystems) == 0 || len(cat.Screens) == 0 {
		t.Fatalf("embedded catalog has empty tables")
	}
	if len(cat.Languages) == 0 || len(cat.Timezones) == 0 || len(cat.GPUs) == 0 {
		t.Fatalf("embedded catalog has empty tables")
	}
}

func TestCatalogKeysSorted(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("failed to load embedded catalog: %v", err)
	}
	keys := cat.BrowserKeys()
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("browser keys not sorted: %v", keys)
		}
	}
	if len(cat.OSKeys()) != len(cat.OperatingSystems) {
		t.Fatalf("OS key slice out of sync with table")
	}
}

func TestCatalogRejectsEmptyTable(t *testing.T) {
	_, err := FromYAML([]byte("browsers: {}\n"))
	if err == nil {
		t.Fatalf("expected validation error for empty catalog")
	}
}

func TestCatalogRejectsUnknownDeviceClass(t *testing.T) {
	yaml := `
browsers:
  chrome: { name: Chrome, engine: Blink, versions: ["120.0"] }
  firefox: { name: Firefox, engine: Gecko, versions: ["121.0"] }
  safari: { name: Safari, engine: WebKit, versions: ["17.2"] }
operating_systems:
  windows: { name: Windows, versions: ["11"], platforms: [Win64], user_agent: "Windows NT {version}" }
  macos: { name: macOS, versions: ["14.0"], platforms: [MacIntel], user_agent: "Macintosh; Intel Mac OS X {version}" }
  linux: { name: Linux, versions: [x86_64], platforms: [Linux x86_64], user_agent: "X11; Linux {version}" }
  android: { name: Android, versions: ["14"], platforms: [Linux armv8l], user_agent: "Linux; Android {version}" }
  ios: { name: iOS, versions: ["17.2"], platforms: [iPhone], user_agent: "iPhone; CPU iPhone OS {version} like Mac OS X" }
screens:
  - { width: 1920, height: 1080, device: Fridge }
languages: [en-US]
timezones:
  - { name: UTC, offset: 0 }
gpus:
  - { vendor: V, renderer: R }
`
	_, err := FromYAML([]byte(yaml))
	if err == nil {
		t.Fatalf("expected validation error for unknown device class")
	}
	if !strings.Contains(err.Error(), "Fridge") {
		t.Fatalf("error should name the offending class, got: %v", err)
	}
}

func TestCatalogScreenCoverage(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("failed to load embedded catalog: %v", err)
	}
	covered := map[string]bool{}
	for _, s := range cat.Screens {
		covered[s.Device] = true
	}
	for _, class := range []string{DeviceDesktop, DeviceMobile, DeviceTablet} {
		if !covered[class] {
			t.Errorf("no screen entry tagged %s", class)
		}
	}
}
