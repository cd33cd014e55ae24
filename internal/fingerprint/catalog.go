package fingerprint

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// Device classes used throughout the catalog and resolver.
const (
	DeviceDesktop = "Desktop"
	DeviceLaptop  = "Laptop"
	DeviceMobile  = "Mobile"
	DeviceTablet  = "Tablet"
)

// DeviceClasses lists every valid device class, in selection order.
var DeviceClasses = []string{DeviceDesktop, DeviceLaptop, DeviceMobile, DeviceTablet}

//go:embed catalog.yaml
var catalogYAML []byte

// Browser describes one browser family and the versions it ships.
type Browser struct {
	Name     string   `yaml:"name"`
	Engine   string   `yaml:"engine"`
	Versions []string `yaml:"versions"`
}

// OperatingSystem describes one OS family, its navigator platform strings
// and the template used for the user-agent OS segment.
type OperatingSystem struct {
	Name      string   `yaml:"name"`
	Versions  []string `yaml:"versions"`
	Platforms []string `yaml:"platforms"`
	UserAgent string   `yaml:"user_agent"`
}

// Screen is one plausible screen geometry tagged with its device class.
type Screen struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Device string `yaml:"device"`
}

// Timezone pairs an IANA zone name with its UTC offset in hours.
type Timezone struct {
	Name   string `yaml:"name"`
	Offset int    `yaml:"offset"`
}

// GPU is one WebGL vendor/renderer pair.
type GPU struct {
	Vendor   string `yaml:"vendor"`
	Renderer string `yaml:"renderer"`
}

// Catalog holds the read-only attribute tables every fingerprint is drawn
// from. Load it once and share it; it is never mutated after validation.
type Catalog struct {
	Browsers         map[string]Browser         `yaml:"browsers"`
	OperatingSystems map[string]OperatingSystem `yaml:"operating_systems"`
	Screens          []Screen                   `yaml:"screens"`
	Languages        []string                   `yaml:"languages"`
	Timezones        []Timezone                 `yaml:"timezones"`
	GPUs             []GPU                      `yaml:"gpus"`

	// Sorted key slices so random draws are reproducible under a fixed
	// seed (map iteration order is not).
	browserKeys []string
	osKeys      []string
}

// FromYAML parses and validates a catalog definition.
func FromYAML(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	if err := cat.validate(); err != nil {
		return nil, err
	}
	for key := range cat.Browsers {
		cat.browserKeys = append(cat.browserKeys, key)
	}
	sort.Strings(cat.browserKeys)
	for key := range cat.OperatingSystems {
		cat.osKeys = append(cat.osKeys, key)
	}
	sort.Strings(cat.osKeys)
	return &cat, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded catalog, loaded and validated once per
// process.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = FromYAML(catalogYAML)
	})
	return defaultCatalog, defaultErr
}

func (c *Catalog) validate() error {
	if len(c.Browsers) == 0 {
		return fmt.Errorf("catalog: browser table is empty")
	}
	if len(c.OperatingSystems) == 0 {
		return fmt.Errorf("catalog: operating system table is empty")
	}
	if len(c.Screens) == 0 {
		return fmt.Errorf("catalog: screen table is empty")
	}
	if len(c.Languages) == 0 {
		return fmt.Errorf("catalog: language table is empty")
	}
	if len(c.Timezones) == 0 {
		return fmt.Errorf("catalog: timezone table is empty")
	}
	if len(c.GPUs) == 0 {
		return fmt.Errorf("catalog: GPU table is empty")
	}

	for key, b := range c.Browsers {
		if b.Name == "" || len(b.Versions) == 0 {
			return fmt.Errorf("catalog: browser %q needs a name and at least one version", key)
		}
	}
	for key, os := range c.OperatingSystems {
		if os.Name == "" || len(os.Versions) == 0 || len(os.Platforms) == 0 {
			return fmt.Errorf("catalog: OS %q needs a name, a version and a platform", key)
		}
	}

	// The resolver's pairing rules name these entries explicitly; a
	// catalog without them cannot satisfy the selection cascade.
	for _, key := range []string{"windows", "macos", "linux", "android", "ios"} {
		if _, ok := c.OperatingSystems[key]; !ok {
			return fmt.Errorf("catalog: required OS entry %q is missing", key)
		}
	}
	for _, key := range []string{"chrome", "firefox", "safari"} {
		if _, ok := c.Browsers[key]; !ok {
			return fmt.Errorf("catalog: required browser entry %q is missing", key)
		}
	}

	classes := make(map[string]bool, len(DeviceClasses))
	for _, d := range DeviceClasses {
		classes[d] = true
	}
	tagged := make(map[string]bool)
	for _, s := range c.Screens {
		if !classes[s.Device] {
			return fmt.Errorf("catalog: screen %dx%d has unknown device class %q", s.Width, s.Height, s.Device)
		}
		if s.Width <= 0 || s.Height <= 0 {
			return fmt.Errorf("catalog: screen with non-positive dimensions %dx%d", s.Width, s.Height)
		}
		tagged[s.Device] = true
	}
	// Laptop borrows Desktop geometries, every other class needs its own.
	for _, d := range []string{DeviceDesktop, DeviceMobile, DeviceTablet} {
		if !tagged[d] {
			return fmt.Errorf("catalog: no screen entry for device class %q", d)
		}
	}
	return nil
}

// BrowserKeys returns the browser table keys in sorted order.
func (c *Catalog) BrowserKeys() []string { return c.browserKeys }

// OSKeys returns the operating system table keys in sorted order.
func (c *Catalog) OSKeys() []string { return c.osKeys }
