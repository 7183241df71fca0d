// Package version compares EKS version strings: bare Kubernetes
// versions like "1.31" as well as addon versions carrying an EKS build
// suffix like "v1.19.2-eksbuild.5".
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blang/semver/v4"
)

// Compare returns -1, 0 or 1 as a is older than, equal to or newer
// than b. The core version is compared first; when equal, the eksbuild
// number breaks the tie. Strings that cannot be parsed compare as
// equal so a malformed platform response never triggers an update.
func Compare(a, b string) int {
	av, abuild, aok := parse(a)
	bv, bbuild, bok := parse(b)
	if !aok || !bok {
		return 0
	}

	if c := av.Compare(bv); c != 0 {
		return c
	}

	switch {
	case abuild < bbuild:
		return -1
	case abuild > bbuild:
		return 1
	}
	return 0
}

// Older reports whether current is strictly older than target
func Older(current, target string) bool {
	return Compare(current, target) < 0
}

// NextMinor returns the next incremental minor version after current,
// when the platform offers it. Control planes only accept one minor
// step per upgrade, so a cluster several minors behind converges over
// successive runs. Returns false when current is already the newest
// offered version or cannot be parsed.
func NextMinor(current string, available []string) (string, bool) {
	major, rest, found := strings.Cut(current, ".")
	if !found {
		return "", false
	}
	minorStr, _, _ := strings.Cut(rest, ".")
	minor, err := strconv.Atoi(minorStr)
	if err != nil {
		return "", false
	}

	next := fmt.Sprintf("%s.%d", major, minor+1)
	for _, v := range available {
		if v == next {
			return next, true
		}
	}
	return "", false
}

// parse splits "v1.19.2-eksbuild.5" into the semver core and the build
// number. ParseTolerant accepts short forms like "1.31".
func parse(s string) (semver.Version, int, bool) {
	core, suffix, _ := strings.Cut(strings.TrimPrefix(s, "v"), "-")

	v, err := semver.ParseTolerant(core)
	if err != nil {
		return semver.Version{}, 0, false
	}

	build := 0
	if suffix != "" {
		if _, num, found := strings.Cut(suffix, "."); found {
			if n, err := strconv.Atoi(num); err == nil {
				build = n
			}
		}
	}

	return v, build, true
}
