package config

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"phantomid/pkg/scenario"
)

// String defaults are overrideable at build time via -ldflags -X
// Example: -ldflags "-X 'phantomid/pkg/config.DefaultOutDirStr=fixtures'"
var (
	DefaultOutDirStr              = "profiles"
	DefaultCountStr               = "0" // 0 -> prompt interactively
	DefaultSeedStr                = ""  // empty -> OS entropy
	DefaultLocaleStr              = "en_US"
	DefaultWorkersStr             = "" // empty -> runtime.NumCPU()
	DefaultDeviceTypeStr          = ""
	DefaultBrowserStr             = ""
	DefaultOSStr                  = ""
	DefaultForceStr               = "false"
	DefaultBundleStr              = "false"
	DefaultIncludeFinancialStr    = "true"
	DefaultIncludeProfessionalStr = "true"
	DefaultQuietStr               = "false"
	DefaultVerboseStr             = "false"
	DefaultScenarioPathStr        = ""
)

type Config struct {
	OutDir  string
	Count   int
	Seed    *uint64
	Locale  string
	Workers int

	DeviceType string
	Browser    string
	OS         string

	Force               bool
	Bundle              bool
	IncludeFinancial    bool
	IncludeProfessional bool
	Quiet               bool
	Verbose             bool

	ScenarioPath   string
	ScenarioName   string
	ActiveScenario *scenario.Scenario
}

func DefaultConfig() *Config {
	workers := parseIntOr(DefaultWorkersStr, runtime.NumCPU())
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Config{
		OutDir:              orString(DefaultOutDirStr, "profiles"),
		Count:               parseIntOr(DefaultCountStr, 0),
		Seed:                parseSeed(DefaultSeedStr),
		Locale:              orString(DefaultLocaleStr, "en_US"),
		Workers:             workers,
		DeviceType:          strings.TrimSpace(DefaultDeviceTypeStr),
		Browser:             strings.TrimSpace(DefaultBrowserStr),
		OS:                  strings.TrimSpace(DefaultOSStr),
		Force:               parseBoolOr(DefaultForceStr, false),
		Bundle:              parseBoolOr(DefaultBundleStr, false),
		IncludeFinancial:    parseBoolOr(DefaultIncludeFinancialStr, true),
		IncludeProfessional: parseBoolOr(DefaultIncludeProfessionalStr, true),
		Quiet:               parseBoolOr(DefaultQuietStr, false),
		Verbose:             parseBoolOr(DefaultVerboseStr, false),
		ScenarioPath:        orString(DefaultScenarioPathStr, ""),
	}
}

func ParseFlags(appName string) (*Config, error) {
	config := DefaultConfig()

	var seedStr string
	flag.StringVar(&config.OutDir, "out", config.OutDir, "Output directory for generated profiles")
	flag.IntVar(&config.Count, "count", config.Count, "Number of profiles to generate (0 prompts interactively)")
	flag.StringVar(&seedStr, "seed", DefaultSeedStr, "Deterministic seed (empty for OS entropy)")
	flag.StringVar(&config.Locale, "locale", config.Locale, "Identity locale (e.g. en_US, de_DE)")
	flag.IntVar(&config.Workers, "workers", config.Workers, "Maximum number of worker goroutines")
	flag.StringVar(&config.DeviceType, "device", config.DeviceType, "Pin device type: Desktop, Laptop, Mobile or Tablet")
	flag.StringVar(&config.Browser, "browser", config.Browser, "Pin browser: chrome, firefox, safari or edge")
	flag.StringVar(&config.OS, "os", config.OS, "Pin OS: windows, macos, linux, android or ios")
	flag.BoolVar(&config.Force, "force", config.Force, "Clear previously generated profile files first")
	flag.BoolVar(&config.Bundle, "bundle", config.Bundle, "Write a single lz4-compressed bundle instead of per-profile files")
	flag.BoolVar(&config.Quiet, "quiet", config.Quiet, "Suppress non-error output")
	flag.BoolVar(&config.Verbose, "verbose", config.Verbose, "Enable verbose output")
	flag.StringVar(&config.ScenarioPath, "scenario", config.ScenarioPath, "Path to scenario YAML describing the run")

	var noFinancial, noProfessional bool
	flag.BoolVar(&noFinancial, "no-financial", false, "Omit credit card and bank details from identities")
	flag.BoolVar(&noProfessional, "no-professional", false, "Omit company and job details from identities")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", appName)
		fmt.Fprintf(os.Stderr, "\nGenerates fake identity + browser fingerprint profiles for security testing.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -count 10\n", appName)
		fmt.Fprintf(os.Stderr, "  %s -count 100 -seed 42 -out fixtures -bundle\n", appName)
		fmt.Fprintf(os.Stderr, "  %s -count 5 -device Mobile -os android\n", appName)
		fmt.Fprintf(os.Stderr, "  %s -scenario scenarios/mobile.yaml\n", appName)
	}

	flag.Parse()

	if seedStr != "" {
		seed, err := strconv.ParseUint(strings.TrimSpace(seedStr), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid seed %q: %w", seedStr, err)
		}
		config.Seed = &seed
	}
	if noFinancial {
		config.IncludeFinancial = false
	}
	if noProfessional {
		config.IncludeProfessional = false
	}

	// Load scenario (CLI path has priority, otherwise embedded definition)
	var loaded *scenario.Scenario
	if config.ScenarioPath != "" {
		sc, err := scenario.LoadFile(config.ScenarioPath)
		if err != nil {
			return nil, err
		}
		loaded = sc
	} else if scenario.HasEmbedded() {
		sc, err := scenario.LoadEmbedded()
		if err != nil {
			return nil, err
		}
		loaded = sc
	}

	if loaded != nil {
		config.applyScenario(loaded)
		config.ActiveScenario = loaded
		config.ScenarioName = loaded.Name
		if config.ScenarioPath == "" {
			config.ScenarioPath = loaded.Source
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.OutDir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if c.Count < 0 {
		return fmt.Errorf("profile count cannot be negative")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("max workers must be greater than 0")
	}
	return nil
}

// applyScenario fills config fields from a scenario. Command-line values
// keep priority: scalars are only overridden while still at their default.
func (c *Config) applyScenario(sc *scenario.Scenario) {
	if c.Count == 0 && sc.Count > 0 {
		c.Count = sc.Count
	}
	if c.Seed == nil && sc.Seed != nil {
		c.Seed = sc.Seed
	}
	if sc.OutDir != "" && c.OutDir == orString(DefaultOutDirStr, "profiles") {
		c.OutDir = sc.OutDir
	}
	if c.DeviceType == "" {
		c.DeviceType = sc.DeviceType
	}
	if c.Browser == "" {
		c.Browser = sc.Browser
	}
	if c.OS == "" {
		c.OS = sc.OS
	}
	if sc.Locale != "" && c.Locale == orString(DefaultLocaleStr, "en_US") {
		c.Locale = sc.Locale
	}
	if sc.Bundle != nil {
		c.Bundle = *sc.Bundle
	}
	if sc.Force != nil {
		c.Force = *sc.Force
	}
	if sc.IncludeFinancial != nil {
		c.IncludeFinancial = *sc.IncludeFinancial
	}
	if sc.IncludeProfessional != nil {
		c.IncludeProfessional = *sc.IncludeProfessional
	}
}

func (c *Config) PrintConfig(appName string) {
	fmt.Printf("🔧 %s Configuration\n", appName)
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("📁 Output Directory: %s\n", c.OutDir)
	fmt.Printf("🔢 Profiles: %d\n", c.Count)
	if c.Seed != nil {
		fmt.Printf("🌱 Seed: %d (deterministic)\n", *c.Seed)
	} else {
		fmt.Println("🌱 Seed: OS entropy")
	}
	fmt.Printf("🌍 Locale: %s\n", c.Locale)
	fmt.Printf("⚡ Workers: %d\n", c.Workers)
	if c.DeviceType != "" || c.Browser != "" || c.OS != "" {
		fmt.Printf("📌 Pins: device=%s browser=%s os=%s\n",
			orString(c.DeviceType, "-"), orString(c.Browser, "-"), orString(c.OS, "-"))
	}
	fmt.Printf("💳 Financial details: %s\n", map[bool]string{true: "Included", false: "Omitted"}[c.IncludeFinancial])
	fmt.Printf("💼 Professional details: %s\n", map[bool]string{true: "Included", false: "Omitted"}[c.IncludeProfessional])
	if c.Bundle {
		fmt.Println("📦 Output mode: single lz4 bundle")
	}
	if c.ScenarioName != "" {
		fmt.Printf("📝 Scenario: %s (%s)\n", c.ScenarioName, c.ScenarioPath)
	} else if c.ScenarioPath != "" {
		fmt.Printf("📝 Scenario: %s\n", c.ScenarioPath)
	}
	fmt.Printf("💻 Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("🧮 CPU Cores: %d\n", runtime.NumCPU())
}

// Helpers for parsing ldflag-provided strings
func parseBoolOr(val string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	case "0", "f", "false", "n", "no", "off":
		return false
	default:
		return fallback
	}
}

func parseIntOr(val string, fallback int) int {
	s := strings.TrimSpace(val)
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func parseSeed(val string) *uint64 {
	s := strings.TrimSpace(val)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func orString(val string, fallback string) string {
	s := strings.TrimSpace(val)
	if s == "" {
		return fallback
	}
	return s
}
