package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"phantomid/internal/fingerprint"
	"phantomid/internal/identity"
	"phantomid/internal/output"
	"phantomid/internal/profile"
	"phantomid/pkg/config"
)

const appName = "phantomid"

func main() {
	cfg, err := config.ParseFlags(appName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	catalog, err := fingerprint.Default()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ attribute catalog: %v\n", err)
		os.Exit(1)
	}

	constraints := fingerprint.Constraints{
		DeviceType: cfg.DeviceType,
		Browser:    cfg.Browser,
		OS:         cfg.OS,
	}
	if err := constraints.Validate(catalog); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	count := cfg.Count
	if count == 0 {
		count, err = promptCount()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}
	}

	if cfg.Verbose {
		cfg.PrintConfig(appName)
		fmt.Println()
	}

	builder, err := profile.NewBuilder(catalog, profile.BuilderConfig{
		Workers:     cfg.Workers,
		Seed:        cfg.Seed,
		Locale:      cfg.Locale,
		Constraints: constraints,
		IdentityOpts: identity.Options{
			IncludeFinancial:    cfg.IncludeFinancial,
			IncludeProfessional: cfg.IncludeProfessional,
			MinAge:              18,
			MaxAge:              65,
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	profiles, err := builder.BuildBatch(count)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ generation failed: %v\n", err)
		os.Exit(1)
	}

	writer := output.NewWriter(cfg.OutDir)
	if err := writer.Prepare(cfg.Force); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	if cfg.Bundle {
		path, err := writer.WriteBundle(profiles)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}
		if !cfg.Quiet {
			fmt.Printf("✔ Bundle saved: %s\n", path)
		}
	} else {
		paths, err := writer.WriteProfiles(profiles)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}
		if !cfg.Quiet {
			for _, path := range paths {
				fmt.Printf("✔ File saved: %s\n", path)
			}
		}
	}

	if !cfg.Quiet {
		fmt.Printf("\n📊 Generated %d profiles in %s (%.2fs)\n",
			len(profiles), filepath.Clean(cfg.OutDir), time.Since(start).Seconds())
	}
}

func promptCount() (int, error) {
	fmt.Print("Enter number of profiles to generate: ")
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return 0, fmt.Errorf("failed to read count: %w", err)
		}
		return 0, fmt.Errorf("no count provided")
	}
	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return 0, fmt.Errorf("invalid count %q", scanner.Text())
	}
	if n < 1 {
		return 0, fmt.Errorf("count must be at least 1, got %d", n)
	}
	return n, nil
}
