package fingerprint

import (
	"fmt"
	"strings"
)

// osUserAgentPart formats the OS segment of a user-agent string. The five
// first-class systems get the exact shapes real browsers emit; anything
// else falls back to the catalog template.
func (g *Generator) osUserAgentPart(osKey, version string) string {
	switch osKey {
	case "windows":
		nt := "11.0"
		if version == "10" {
			nt = "10.0"
		}
		return "Windows NT " + nt
	case "macos":
		return "Macintosh; Intel Mac OS X " + strings.ReplaceAll(version, ".", "_")
	case "linux":
		return "X11; Linux " + version
	case "android":
		return "Linux; Android " + version
	case "ios":
		return "iPhone; CPU iPhone OS " + strings.ReplaceAll(version, ".", "_") + " like Mac OS X"
	default:
		return strings.ReplaceAll(g.catalog.OperatingSystems[osKey].UserAgent, "{version}", version)
	}
}

func buildUserAgent(browserKey, browserVersion, osPart string) string {
	switch browserKey {
	case "chrome":
		return fmt.Sprintf("Mozilla/5.0 (%s) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%s Safari/537.36",
			osPart, browserVersion)
	case "firefox":
		return fmt.Sprintf("Mozilla/5.0 (%s; rv:%s) Gecko/20100101 Firefox/%s",
			osPart, browserVersion, browserVersion)
	case "safari":
		return fmt.Sprintf("Mozilla/5.0 (%s) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/%s Safari/605.1.15",
			osPart, browserVersion)
	case "edge":
		return fmt.Sprintf("Mozilla/5.0 (%s) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%s Safari/537.36 Edg/%s",
			osPart, browserVersion, browserVersion)
	default:
		return fmt.Sprintf("Mozilla/5.0 (%s)", osPart)
	}
}

// pickScreen selects a geometry matching the device class. Laptops also
// accept Desktop panels; if nothing matches, the whole table is eligible.
func (g *Generator) pickScreen(device string) Screen {
	var matching []Screen
	for _, s := range g.catalog.Screens {
		if s.Device == device || (device == DeviceLaptop && s.Device == DeviceDesktop) {
			matching = append(matching, s)
		}
	}
	if len(matching) == 0 {
		matching = g.catalog.Screens
	}
	return pick(g.rnd, matching)
}

// pickLanguages selects one locale tag and derives the language list: a
// region-tagged locale also reports its base language ("fr-FR" -> "fr").
func (g *Generator) pickLanguages() (string, []string) {
	language := pick(g.rnd, g.catalog.Languages)
	languages := []string{language}
	if base, _, found := strings.Cut(language, "-"); found {
		languages = append(languages, base)
	}
	return language, languages
}

func (g *Generator) hardware(device string) (cores, memory, touchPoints int) {
	if device == DeviceDesktop || device == DeviceLaptop {
		return pick(g.rnd, []int{4, 6, 8, 12, 16}), pick(g.rnd, []int{8, 16, 32, 64}), 0
	}
	return pick(g.rnd, []int{4, 6, 8}), pick(g.rnd, []int{4, 6, 8, 12}), pick(g.rnd, []int{5, 10})
}

// privateRanges bounds each octet of the three RFC1918 blocks.
var privateRanges = [][4][2]int{
	{{10, 10}, {0, 255}, {0, 255}, {0, 255}},     // 10.0.0.0/8
	{{172, 172}, {16, 31}, {0, 255}, {0, 255}},   // 172.16.0.0/12
	{{192, 192}, {168, 168}, {0, 255}, {0, 255}}, // 192.168.0.0/16
}

func (g *Generator) privateIP() string {
	r := pick(g.rnd, privateRanges)
	octets := make([]string, 4)
	for i, bounds := range r {
		octets[i] = fmt.Sprintf("%d", bounds[0]+g.rnd.IntN(bounds[1]-bounds[0]+1))
	}
	return strings.Join(octets, ".")
}

func (g *Generator) macAddress() string {
	parts := make([]string, 6)
	for i := range parts {
		parts[i] = fmt.Sprintf("%02x", g.rnd.IntN(256))
	}
	return strings.Join(parts, ":")
}

// doNotTrack returns nil (header absent), "1" or "0".
func (g *Generator) doNotTrack() *string {
	switch g.rnd.IntN(3) {
	case 0:
		return nil
	case 1:
		v := "1"
		return &v
	default:
		v := "0"
		return &v
	}
}
