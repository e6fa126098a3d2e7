// Package stamp derives the extension build version from the UTC clock.
//
// A version has the form YYYY.M.D.HHMM (e.g., 2026.10.19.1453). Browser
// extension runtimes accept one to four dot-separated integers, each at most
// 65535, with no leading zeros, so the time of day is encoded as a single
// integer rather than zero-padded.
package stamp

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// maxComponent is the largest value an extension version component may hold.
const maxComponent = 65535

// Version is a timestamp-derived extension build version.
type Version struct {
	Year  int
	Month int
	Day   int
	// Clock is hours*100+minutes in UTC.
	Clock int
}

// New returns the build version for t, converted to UTC.
func New(t time.Time) Version {
	u := t.UTC()
	return Version{
		Year:  u.Year(),
		Month: int(u.Month()),
		Day:   u.Day(),
		Clock: u.Hour()*100 + u.Minute(),
	}
}

// Now returns the build version for the current time.
func Now() Version {
	return New(time.Now())
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Year, v.Month, v.Day, v.Clock)
}

// Parse reads a version string with three or four components. A missing
// fourth component is treated as zero.
func Parse(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 && len(parts) != 4 {
		return Version{}, fmt.Errorf("version %q: expected 3 or 4 dot-separated components", s)
	}

	date, err := semver.StrictNewVersion(strings.Join(parts[:3], "."))
	if err != nil {
		return Version{}, fmt.Errorf("parsing version %q: %w", s, err)
	}

	v := Version{
		Year:  int(date.Major()),
		Month: int(date.Minor()),
		Day:   int(date.Patch()),
	}
	if len(parts) == 4 {
		clock, err := strconv.Atoi(parts[3])
		if err != nil || clock < 0 || (len(parts[3]) > 1 && parts[3][0] == '0') {
			return Version{}, fmt.Errorf("version %q: invalid fourth component %q", s, parts[3])
		}
		v.Clock = clock
	}

	for _, c := range []int{v.Year, v.Month, v.Day, v.Clock} {
		if c > maxComponent {
			return Version{}, fmt.Errorf("version %q: component %d exceeds %d", s, c, maxComponent)
		}
	}
	return v, nil
}

// Compare returns -1 if a < b, 0 if equal, 1 if a > b.
func (v Version) Compare(other Version) int {
	a := semver.New(uint64(v.Year), uint64(v.Month), uint64(v.Day), "", "")
	b := semver.New(uint64(other.Year), uint64(other.Month), uint64(other.Day), "", "")
	if c := a.Compare(b); c != 0 {
		return c
	}
	switch {
	case v.Clock < other.Clock:
		return -1
	case v.Clock > other.Clock:
		return 1
	default:
		return 0
	}
}

// IsNewer reports whether candidate sorts strictly after published.
func IsNewer(candidate, published string) (bool, error) {
	c, err := Parse(candidate)
	if err != nil {
		return false, fmt.Errorf("parsing candidate version: %w", err)
	}
	p, err := Parse(published)
	if err != nil {
		return false, fmt.Errorf("parsing published version: %w", err)
	}
	return c.Compare(p) == 1, nil
}
