// Package fingerprint assembles self-consistent, plausible browser/device
// fingerprints from the attribute catalog: a resolved device/OS/browser
// selection, fields derived from it, and digest-based identity hashes.
package fingerprint

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Fingerprint is the immutable output record. Field names match the JSON
// contract consumed by the persistence layer.
type Fingerprint struct {
	UserAgent      string `json:"user_agent"`
	BrowserName    string `json:"browser_name"`
	BrowserVersion string `json:"browser_version"`
	BrowserEngine  string `json:"browser_engine"`

	Platform   string `json:"platform"`
	OSName     string `json:"os_name"`
	OSVersion  string `json:"os_version"`
	DeviceType string `json:"device_type"`

	ScreenWidth      int     `json:"screen_width"`
	ScreenHeight     int     `json:"screen_height"`
	ScreenResolution string  `json:"screen_resolution"`
	ColorDepth       int     `json:"color_depth"`
	PixelRatio       float64 `json:"pixel_ratio"`

	Language       string   `json:"language"`
	Languages      []string `json:"languages"`
	Timezone       string   `json:"timezone"`
	TimezoneOffset int      `json:"timezone_offset"`

	IPAddress      string `json:"ip_address"`
	ConnectionType string `json:"connection_type"`

	CPUCores       int `json:"cpu_cores"`
	DeviceMemory   int `json:"device_memory"`
	MaxTouchPoints int `json:"max_touch_points"`

	WebGLVendor   string `json:"webgl_vendor"`
	WebGLRenderer string `json:"webgl_renderer"`

	CanvasHash string `json:"canvas_hash"`
	AudioHash  string `json:"audio_hash"`

	DoNotTrack     *string `json:"do_not_track"`
	CookiesEnabled bool    `json:"cookies_enabled"`
	LocalStorage   bool    `json:"local_storage"`
	SessionStorage bool    `json:"session_storage"`
	IndexedDB      bool    `json:"indexed_db"`

	MACAddress      string `json:"mac_address"`
	FingerprintHash string `json:"fingerprint_hash"`
}

// Generator produces fingerprints from a catalog and an explicitly owned
// entropy stream. A Generator is not safe for concurrent use; concurrent
// callers each construct their own (see NewSeeded stream parameter).
type Generator struct {
	catalog *Catalog
	rnd     *rand.Rand
}

// New returns a Generator seeded from the OS entropy source. cat may be
// nil, in which case the embedded default catalog is used.
func New(cat *Catalog) (*Generator, error) {
	var buf [16]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	seed := binary.LittleEndian.Uint64(buf[:8])
	stream := binary.LittleEndian.Uint64(buf[8:])
	return newGenerator(cat, seed, stream)
}

// NewSeeded returns a deterministic Generator. The same (seed, stream)
// pair always replays the same sequence of fingerprints; distinct streams
// under one seed give independent entropy to parallel workers.
func NewSeeded(cat *Catalog, seed, stream uint64) (*Generator, error) {
	return newGenerator(cat, seed, stream)
}

func newGenerator(cat *Catalog, seed, stream uint64) (*Generator, error) {
	if cat == nil {
		var err error
		cat, err = Default()
		if err != nil {
			return nil, err
		}
	}
	return &Generator{
		catalog: cat,
		rnd:     rand.New(rand.NewPCG(seed, stream)),
	}, nil
}

func pick[T any](rnd *rand.Rand, items []T) T {
	return items[rnd.IntN(len(items))]
}

// Generate assembles one fingerprint honouring the given constraints.
func (g *Generator) Generate(c Constraints) (*Fingerprint, error) {
	r, err := g.resolve(c)
	if err != nil {
		return nil, err
	}

	osEntry := g.catalog.OperatingSystems[r.osKey]
	browserEntry := g.catalog.Browsers[r.browserKey]

	userAgent := buildUserAgent(r.browserKey, r.browserVersion, g.osUserAgentPart(r.osKey, r.osVersion))
	screen := g.pickScreen(r.deviceType)
	language, languages := g.pickLanguages()
	tz := pick(g.rnd, g.catalog.Timezones)
	cores, memory, touchPoints := g.hardware(r.deviceType)
	gpu := pick(g.rnd, g.catalog.GPUs)

	fp := &Fingerprint{
		UserAgent:      userAgent,
		BrowserName:    browserEntry.Name,
		BrowserVersion: r.browserVersion,
		BrowserEngine:  browserEntry.Engine,

		Platform:   r.platform,
		OSName:     osEntry.Name,
		OSVersion:  r.osVersion,
		DeviceType: r.deviceType,

		ScreenWidth:      screen.Width,
		ScreenHeight:     screen.Height,
		ScreenResolution: fmt.Sprintf("%dx%d", screen.Width, screen.Height),
		ColorDepth:       pick(g.rnd, []int{24, 32}),
		PixelRatio:       pick(g.rnd, []float64{1.0, 1.25, 1.5, 2.0, 3.0}),

		Language:       language,
		Languages:      languages,
		Timezone:       tz.Name,
		TimezoneOffset: tz.Offset * 60,

		IPAddress:      g.privateIP(),
		ConnectionType: pick(g.rnd, []string{"wifi", "ethernet", "4g", "5g"}),

		CPUCores:       cores,
		DeviceMemory:   memory,
		MaxTouchPoints: touchPoints,

		WebGLVendor:   gpu.Vendor,
		WebGLRenderer: gpu.Renderer,

		CanvasHash: g.opaqueHash("canvas"),
		AudioHash:  g.opaqueHash("audio"),

		DoNotTrack:     g.doNotTrack(),
		CookiesEnabled: true,
		LocalStorage:   true,
		SessionStorage: true,
		IndexedDB:      true,

		MACAddress: g.macAddress(),
	}
	fp.FingerprintHash = Hash(fp.UserAgent, fp.ScreenResolution, fp.Timezone, fp.Language, fp.WebGLRenderer)
	return fp, nil
}

// GenerateBatch produces count fingerprints, failing fast on the first
// error. count must be at least 1.
func (g *Generator) GenerateBatch(count int, c Constraints) ([]*Fingerprint, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: batch count must be at least 1, got %d", ErrInvalidArgument, count)
	}
	fps := make([]*Fingerprint, 0, count)
	for i := 0; i < count; i++ {
		fp, err := g.Generate(c)
		if err != nil {
			return nil, err
		}
		fps = append(fps, fp)
	}
	return fps, nil
}
