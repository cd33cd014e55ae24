// Package profile pairs one synthetic identity with one synthetic
// fingerprint and builds batches of such pairs.
package profile

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"phantomid/internal/fingerprint"
	"phantomid/internal/identity"
)

// Profile is the persisted unit: one identity plus one fingerprint, with
// an id downstream fixtures can reference.
type Profile struct {
	ID          string                   `json:"id"`
	GeneratedAt time.Time                `json:"generated_at"`
	Identity    *identity.Identity       `json:"identity"`
	Fingerprint *fingerprint.Fingerprint `json:"fingerprint"`
}

// BuilderConfig controls batch generation.
type BuilderConfig struct {
	Workers      int     // defaults to runtime.NumCPU()
	Seed         *uint64 // nil for OS entropy
	Locale       string
	Constraints  fingerprint.Constraints
	IdentityOpts identity.Options
}

// Builder produces profiles against one catalog. Safe for concurrent use;
// every unit of work owns its own entropy streams.
type Builder struct {
	cfg     BuilderConfig
	catalog *fingerprint.Catalog
}

// NewBuilder validates the constraint pins up front so conflicts surface
// before any work is spawned.
func NewBuilder(cat *fingerprint.Catalog, cfg BuilderConfig) (*Builder, error) {
	if cat == nil {
		var err error
		cat, err = fingerprint.Default()
		if err != nil {
			return nil, err
		}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if err := cfg.Constraints.Validate(cat); err != nil {
		return nil, err
	}
	return &Builder{cfg: cfg, catalog: cat}, nil
}

// Build generates a single profile. index selects the entropy streams for
// seeded runs, so Build(i) inside any schedule reproduces the same record.
func (b *Builder) Build(index int) (*Profile, error) {
	fpGen, idGen, err := b.generators(index)
	if err != nil {
		return nil, err
	}

	fp, err := fpGen.Generate(b.cfg.Constraints)
	if err != nil {
		return nil, err
	}
	id := idGen.Generate(b.cfg.IdentityOpts)

	return &Profile{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Identity:    id,
		Fingerprint: fp,
	}, nil
}

// BuildBatch generates count profiles over a bounded worker pool,
// fail-fast: the first error aborts the batch and no partial results are
// returned. count must be at least 1.
func (b *Builder) BuildBatch(count int) ([]*Profile, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: batch count must be at least 1, got %d",
			fingerprint.ErrInvalidArgument, count)
	}

	workers := b.cfg.Workers
	if workers > count {
		workers = count
	}

	jobs := make(chan int, count)
	results := make([]*Profile, count)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				p, err := b.Build(i)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					continue
				}
				results[i] = p
			}
		}()
	}

	for i := 0; i < count; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// generators builds the per-unit entropy owners. Seeded runs derive two
// PCG streams per index (fingerprint and identity) so results do not
// depend on worker scheduling.
func (b *Builder) generators(index int) (*fingerprint.Generator, *identity.Generator, error) {
	if b.cfg.Seed != nil {
		fpStream := uint64(index)*2 + 1
		idStream := uint64(index)*2 + 2
		fpGen, err := fingerprint.NewSeeded(b.catalog, *b.cfg.Seed, fpStream)
		if err != nil {
			return nil, nil, err
		}
		return fpGen, identity.NewSeeded(b.cfg.Locale, *b.cfg.Seed, idStream), nil
	}

	fpGen, err := fingerprint.New(b.catalog)
	if err != nil {
		return nil, nil, err
	}
	idGen, err := identity.New(b.cfg.Locale)
	if err != nil {
		return nil, nil, err
	}
	return fpGen, idGen, nil
}
