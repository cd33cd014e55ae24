package scenario

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
name: mobile-fixtures
description: android-heavy fixture set
count: 25
seed: 1234
out_dir: fixtures/mobile
device_type: Mobile
os: android
locale: de_DE
bundle: true
include_financial: false
`

func TestFromYAML(t *testing.T) {
	sc, err := FromYAML(sampleYAML)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if sc.Name != "mobile-fixtures" || sc.Count != 25 {
		t.Fatalf("unexpected scenario %+v", sc)
	}
	if sc.Seed == nil || *sc.Seed != 1234 {
		t.Fatalf("seed not parsed: %v", sc.Seed)
	}
	if sc.Bundle == nil || !*sc.Bundle {
		t.Fatalf("bundle not parsed")
	}
	if sc.IncludeFinancial == nil || *sc.IncludeFinancial {
		t.Fatalf("include_financial should parse as false")
	}
	if sc.Force != nil {
		t.Fatalf("absent optional should stay nil")
	}
}

func TestFromYAMLRequiresName(t *testing.T) {
	if _, err := FromYAML("count: 3\n"); err == nil {
		t.Fatalf("expected error for missing name")
	}
}

func TestFromYAMLRejectsNegativeCount(t *testing.T) {
	if _, err := FromYAML("name: bad\ncount: -1\n"); err == nil {
		t.Fatalf("expected error for negative count")
	}
}

func TestFromYAMLRejectsEmpty(t *testing.T) {
	if _, err := FromYAML("   \n"); err == nil {
		t.Fatalf("expected error for empty scenario")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	sc, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if sc.Source != path {
		t.Fatalf("source %q, want %q", sc.Source, path)
	}
}

func TestHasEmbeddedDefaultsFalse(t *testing.T) {
	if HasEmbedded() {
		t.Fatalf("no embedded scenario expected in tests")
	}
}
