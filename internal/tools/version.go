package tools

import (
	"regexp"
	"strings"
)

var verRe = regexp.MustCompile(`(?i)\bv?(\d+\.\d+\.\d+(?:[\w\.-]+)?)\b`)

// ParseVersion extracts the first version-looking token from probe
// output. The first line wins; the full text is scanned only when the
// first line has no match. Returns "" when nothing matches.
func ParseVersion(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// Take first line
	line := strings.Split(s, "\n")[0]
	if m := verRe.FindStringSubmatch(line); len(m) > 1 {
		return m[1]
	}
	// Fallback: try on full string
	if m := verRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return ""
}

// VersionLess reports a < b under the ordering used for update
// decisions: a leading "v" is ignored, the numeric major.minor.patch
// triple compares numerically with missing parts read as zero, and on
// an equal triple a pre-release (anything after "-") sorts before the
// plain release. Two versions with an equal triple and the same
// pre-release presence compare equal, and so does anything involving an
// empty version.
func VersionLess(a, b string) bool {
	a = NormalizeVersion(a)
	b = NormalizeVersion(b)
	if a == "" || b == "" {
		return false
	}
	as := strings.SplitN(a, "-", 2)[0]
	bs := strings.SplitN(b, "-", 2)[0]
	ap := strings.Split(as, ".")
	bp := strings.Split(bs, ".")
	// pad to length 3
	for len(ap) < 3 {
		ap = append(ap, "0")
	}
	for len(bp) < 3 {
		bp = append(bp, "0")
	}
	for i := 0; i < 3; i++ {
		av := atoiSafe(ap[i])
		bv := atoiSafe(bp[i])
		if av < bv {
			return true
		}
		if av > bv {
			return false
		}
	}
	// equal numeric parts: pre-release sorts before release
	ahasPre := strings.Contains(a, "-")
	bhasPre := strings.Contains(b, "-")
	if ahasPre && !bhasPre {
		return true
	}
	return false
}

// IsNewer reports whether latest is strictly newer than installed.
// Unknown versions on either side report false, so missing data never
// triggers an update.
func IsNewer(latest, installed string) bool {
	return VersionLess(installed, latest)
}

// NormalizeVersion trims whitespace and a leading "v".
func NormalizeVersion(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "v")
	return v
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}
