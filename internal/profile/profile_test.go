package profile

import (
	"errors"
	"testing"

	"phantomid/internal/fingerprint"
)

func seedPtr(v uint64) *uint64 { return &v }

func TestBuildBatchCount(t *testing.T) {
	b, err := NewBuilder(nil, BuilderConfig{Seed: seedPtr(1), Workers: 4})
	if err != nil {
		t.Fatalf("builder failed: %v", err)
	}
	profiles, err := b.BuildBatch(5)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if len(profiles) != 5 {
		t.Fatalf("batch returned %d profiles, want 5", len(profiles))
	}
	for i, p := range profiles {
		if p == nil {
			t.Fatalf("slot %d is nil", i)
		}
		if p.Identity == nil || p.Fingerprint == nil {
			t.Fatalf("slot %d missing identity or fingerprint", i)
		}
		if p.ID == "" {
			t.Fatalf("slot %d missing id", i)
		}
	}
}

func TestBuildBatchRejectsNonPositiveCount(t *testing.T) {
	b, err := NewBuilder(nil, BuilderConfig{})
	if err != nil {
		t.Fatalf("builder failed: %v", err)
	}
	if _, err := b.BuildBatch(0); !errors.Is(err, fingerprint.ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
}

func TestSeededBatchIsReproducibleAcrossSchedules(t *testing.T) {
	// Same seed, different worker counts: every index must carry the same
	// fingerprint because each unit owns its own entropy stream.
	a, err := NewBuilder(nil, BuilderConfig{Seed: seedPtr(99), Workers: 1})
	if err != nil {
		t.Fatalf("builder failed: %v", err)
	}
	b, err := NewBuilder(nil, BuilderConfig{Seed: seedPtr(99), Workers: 8})
	if err != nil {
		t.Fatalf("builder failed: %v", err)
	}
	pa, err := a.BuildBatch(10)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	pb, err := b.BuildBatch(10)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	for i := range pa {
		if pa[i].Fingerprint.FingerprintHash != pb[i].Fingerprint.FingerprintHash {
			t.Fatalf("index %d fingerprints diverged across schedules", i)
		}
		if pa[i].Identity.FullName != pb[i].Identity.FullName {
			t.Fatalf("index %d identities diverged across schedules", i)
		}
	}
}

func TestConflictingPinsFailAtBuilderConstruction(t *testing.T) {
	_, err := NewBuilder(nil, BuilderConfig{
		Constraints: fingerprint.Constraints{OS: "ios", Browser: "firefox"},
	})
	if !errors.Is(err, fingerprint.ErrConstraintConflict) {
		t.Fatalf("want ErrConstraintConflict, got %v", err)
	}
}

func TestProfileIDsAreUnique(t *testing.T) {
	b, err := NewBuilder(nil, BuilderConfig{Seed: seedPtr(3), Workers: 2})
	if err != nil {
		t.Fatalf("builder failed: %v", err)
	}
	profiles, err := b.BuildBatch(20)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	seen := map[string]bool{}
	for _, p := range profiles {
		if seen[p.ID] {
			t.Fatalf("duplicate profile id %s", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestConstraintsFlowThrough(t *testing.T) {
	b, err := NewBuilder(nil, BuilderConfig{
		Seed:        seedPtr(4),
		Constraints: fingerprint.Constraints{OS: "android"},
	})
	if err != nil {
		t.Fatalf("builder failed: %v", err)
	}
	profiles, err := b.BuildBatch(8)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	for _, p := range profiles {
		if p.Fingerprint.OSName != "Android" {
			t.Fatalf("pinned android, got %s", p.Fingerprint.OSName)
		}
	}
}
