package target

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownBrowser is returned when a browser name is not recognized.
var ErrUnknownBrowser = errors.New("unknown browser")

// Browser identifies a supported extension target.
type Browser string

const (
	Chrome  Browser = "chrome"
	Firefox Browser = "firefox"
)

// BrowserConfig maps a browser to its display title, bundle file and the
// manifest keys that must never reach its manifest.
type BrowserConfig struct {
	Title      string
	BundleName string
	Blocklist  []string
}

// browserRegistry maps each browser to its packaging metadata.
var browserRegistry = map[Browser]BrowserConfig{
	Chrome: {
		Title:      "Chrome",
		BundleName: "chrome-bundle.zip",
		Blocklist:  []string{"applications"},
	},
	Firefox: {
		Title:      "Firefox",
		BundleName: "firefox-bundle.xpi",
		Blocklist:  []string{"key"},
	},
}

// AllBrowsers returns every supported browser in build order.
func AllBrowsers() []Browser {
	return []Browser{Chrome, Firefox}
}

// Title returns the human-readable browser name (e.g., "Firefox").
func (b Browser) Title() string { return browserRegistry[b].Title }

// BundleName returns the archive file name written under the bundles directory.
func (b Browser) BundleName() string { return browserRegistry[b].BundleName }

// Blocklist returns a copy of the manifest keys excluded for this browser.
func (b Browser) Blocklist() []string {
	return append([]string(nil), browserRegistry[b].Blocklist...)
}

// Valid reports whether b is a supported browser.
func (b Browser) Valid() bool {
	_, ok := browserRegistry[b]
	return ok
}

func (b Browser) String() string { return string(b) }

// ParseBrowser converts a string to a Browser.
func ParseBrowser(s string) (Browser, error) {
	b := Browser(strings.ToLower(strings.TrimSpace(s)))
	if !b.Valid() {
		return "", fmt.Errorf("%w %q: supported browsers are %q and %q", ErrUnknownBrowser, s, Chrome, Firefox)
	}
	return b, nil
}

// ParseBrowsers parses a comma-separated browser list. An empty list selects
// every browser. Duplicates are dropped.
func ParseBrowsers(csv string) ([]Browser, error) {
	if strings.TrimSpace(csv) == "" {
		return AllBrowsers(), nil
	}

	seen := make(map[Browser]bool)
	var browsers []Browser
	for _, part := range strings.Split(csv, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		b, err := ParseBrowser(part)
		if err != nil {
			return nil, err
		}
		if !seen[b] {
			seen[b] = true
			browsers = append(browsers, b)
		}
	}
	return browsers, nil
}
