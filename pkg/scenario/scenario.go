package scenario

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EmbeddedScenarioYAML holds build-time injected YAML. Empty when not provided.
// Set via: -ldflags "-X 'phantomid/pkg/scenario.EmbeddedScenarioYAML=...'"
var EmbeddedScenarioYAML string

// Scenario is a named, reusable run descriptor: how many profiles to
// generate, with which pins and output settings. Pointer fields are only
// applied when present so a scenario can override defaults selectively.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	Count  int     `yaml:"count"`
	Seed   *uint64 `yaml:"seed"`
	OutDir string  `yaml:"out_dir"`

	DeviceType string `yaml:"device_type"`
	Browser    string `yaml:"browser"`
	OS         string `yaml:"os"`
	Locale     string `yaml:"locale"`

	Bundle              *bool `yaml:"bundle"`
	Force               *bool `yaml:"force"`
	IncludeFinancial    *bool `yaml:"include_financial"`
	IncludeProfessional *bool `yaml:"include_professional"`

	Source string `yaml:"-"`
}

// FromYAML parses a raw YAML scenario definition.
func FromYAML(data string) (*Scenario, error) {
	trimmed := strings.TrimSpace(data)
	if trimmed == "" {
		return nil, errors.New("scenario YAML is empty")
	}
	var sc Scenario
	if err := yaml.Unmarshal([]byte(trimmed), &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}
	if sc.Name == "" {
		return nil, errors.New("scenario missing required field 'name'")
	}
	if sc.Count < 0 {
		return nil, fmt.Errorf("scenario %q has negative count %d", sc.Name, sc.Count)
	}
	return &sc, nil
}

// LoadFile loads a scenario from a YAML file path.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}
	sc, err := FromYAML(string(data))
	if err != nil {
		return nil, err
	}
	sc.Source = path
	return sc, nil
}

// LoadEmbedded parses the embedded scenario definition if present.
func LoadEmbedded() (*Scenario, error) {
	if !HasEmbedded() {
		return nil, errors.New("no embedded scenario available")
	}
	raw := strings.TrimSpace(EmbeddedScenarioYAML)
	sc, err := FromYAML(raw)
	if err == nil {
		sc.Source = "embedded"
		return sc, nil
	}

	// Allow base64 encoded payloads for ease of ldflags embedding
	decoded, decodeErr := base64.StdEncoding.DecodeString(raw)
	if decodeErr != nil {
		return nil, err
	}
	sc, err = FromYAML(string(decoded))
	if err != nil {
		return nil, err
	}
	sc.Source = "embedded"
	return sc, nil
}

// HasEmbedded reports whether a build-time scenario is embedded.
func HasEmbedded() bool {
	return strings.TrimSpace(EmbeddedScenarioYAML) != ""
}
