package atom

import (
	"regexp"
	"strconv"
	"strings"
)

// versionRe matches the package manager version grammar:
// digits, dotted components, an optional single letter, optional
// _alpha/_beta/_pre/_rc/_p suffixes, and an optional -rN revision.
var versionRe = regexp.MustCompile(
	`^(\d+(?:\.\d+)*)([a-z]?)((?:_(?:alpha|beta|pre|rc|p)\d*)*)(?:-r(\d+))?$`)

// Version is a parsed package version.
type Version struct {
	Components []string // numeric components, leading zeros preserved
	Letter     byte     // 0 when absent
	Suffixes   []Suffix
	Revision   int // 0 when absent
}

// Suffix is a single _alpha/_beta/_pre/_rc/_p version suffix.
type Suffix struct {
	Name   string
	Number int
}

// suffix ordering: _alpha < _beta < _pre <
// _rc < (none) < _p.
var suffixRank = map[string]int{
	"alpha": 0,
	"beta":  1,
	"pre":   2,
	"rc":    3,
	"":      4,
	"p":     5,
}

// ParseVersion parses a version string, e.g. "1.2.3b_rc1-r2".
func ParseVersion(s string) (*Version, error) {
	m := versionRe.FindStringSubmatch(s)
	if m == nil {
		return nil, ErrMalformed
	}
	v := &Version{Components: strings.Split(m[1], ".")}
	if m[2] != "" {
		v.Letter = m[2][0]
	}
	for _, part := range strings.Split(m[3], "_") {
		if part == "" {
			continue
		}
		name := strings.TrimRight(part, "0123456789")
		num := 0
		if digits := part[len(name):]; digits != "" {
			num, _ = strconv.Atoi(digits)
		}
		v.Suffixes = append(v.Suffixes, Suffix{Name: name, Number: num})
	}
	if m[4] != "" {
		v.Revision, _ = strconv.Atoi(m[4])
	}
	return v, nil
}

// String returns the version in its canonical form, including the revision
// when non-zero.
func (v *Version) String() string {
	var sb strings.Builder
	sb.WriteString(strings.Join(v.Components, "."))
	if v.Letter != 0 {
		sb.WriteByte(v.Letter)
	}
	for _, s := range v.Suffixes {
		sb.WriteByte('_')
		sb.WriteString(s.Name)
		if s.Number != 0 {
			sb.WriteString(strconv.Itoa(s.Number))
		}
	}
	if v.Revision != 0 {
		sb.WriteString("-r")
		sb.WriteString(strconv.Itoa(v.Revision))
	}
	return sb.String()
}

// CompareVersions returns -1, 0, or 1 ordering a relative to b.
func CompareVersions(a, b *Version) int {
	if c := compareComponents(a.Components, b.Components); c != 0 {
		return c
	}
	if c := cmp(int(a.Letter), int(b.Letter)); c != 0 {
		return c
	}
	if c := compareSuffixes(a.Suffixes, b.Suffixes); c != 0 {
		return c
	}
	return cmp(a.Revision, b.Revision)
}

func compareComponents(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		var c int
		if i == 0 {
			c = compareInts(a[i], b[i])
		} else {
			c = compareTrailing(a[i], b[i])
		}
		if c != 0 {
			return c
		}
	}
	return cmp(len(a), len(b))
}

// compareInts compares two digit strings as integers without overflow.
func compareInts(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if c := cmp(len(a), len(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// compareTrailing compares non-leading components. Components with a
// leading zero compare as fractional parts, so 1.01 < 1.1.
func compareTrailing(a, b string) int {
	if strings.HasPrefix(a, "0") || strings.HasPrefix(b, "0") {
		return strings.Compare(strings.TrimRight(a, "0"), strings.TrimRight(b, "0"))
	}
	return compareInts(a, b)
}

func compareSuffixes(a, b []Suffix) int {
	none := Suffix{Name: ""}
	for i := 0; i < len(a) || i < len(b); i++ {
		sa, sb := none, none
		if i < len(a) {
			sa = a[i]
		}
		if i < len(b) {
			sb = b[i]
		}
		if c := cmp(suffixRank[sa.Name], suffixRank[sb.Name]); c != 0 {
			return c
		}
		if c := cmp(sa.Number, sb.Number); c != 0 {
			return c
		}
	}
	return 0
}

func cmp(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
