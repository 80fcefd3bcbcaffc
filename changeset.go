package pkgcommit

import "strings"

// ChangeSet groups classified staged changes by kind. Package and eclass
// changes each form a single group; generic changes form one group per
// top-level directory. Groups and the records within them preserve
// first-seen order, and duplicate (status, path) pairs are dropped.
type ChangeSet struct {
	groups []*group
	seen   map[string]struct{}
}

type group struct {
	kind    Kind
	key     string // top-level directory for KindOther groups
	records []Record
}

// NewChangeSet returns an empty ChangeSet.
func NewChangeSet() *ChangeSet {
	return &ChangeSet{seen: make(map[string]struct{})}
}

func (cs *ChangeSet) add(kind Kind, key string, rec Record) {
	info := rec.Info()
	seenKey := key + "\x00" + string(info.Status) + "\x00" + info.Path
	if _, ok := cs.seen[seenKey]; ok {
		return
	}
	cs.seen[seenKey] = struct{}{}
	for _, g := range cs.groups {
		if g.kind == kind && g.key == key {
			g.records = append(g.records, rec)
			return
		}
	}
	cs.groups = append(cs.groups, &group{kind: kind, key: key, records: []Record{rec}})
}

// onlyPackages reports whether every classified change is package-kind.
func (cs *ChangeSet) onlyPackages() bool {
	for _, g := range cs.groups {
		if g.kind != KindPackage {
			return false
		}
	}
	return len(cs.groups) > 0
}

// Pkgs returns all package changes in first-seen order.
func (cs *ChangeSet) Pkgs() []*PkgChange {
	var pkgs []*PkgChange
	for _, g := range cs.groups {
		if g.kind != KindPackage {
			continue
		}
		for _, rec := range g.records {
			pkgs = append(pkgs, rec.(*PkgChange))
		}
	}
	return pkgs
}

// Ebuilds returns the package changes that touch package definition files.
func (cs *ChangeSet) Ebuilds() []*PkgChange {
	var ebuilds []*PkgChange
	for _, pkg := range cs.Pkgs() {
		if pkg.Ebuild {
			ebuilds = append(ebuilds, pkg)
		}
	}
	return ebuilds
}

// Paths returns all staged paths in first-seen order.
func (cs *ChangeSet) Paths() []string {
	var paths []string
	seen := make(map[string]struct{})
	for _, g := range cs.groups {
		for _, rec := range g.records {
			p := rec.Info().Path
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			paths = append(paths, p)
		}
	}
	return paths
}

// Prefix determines the commit message prefix using GLEP 66 as a guide.
//
// See https://www.gentoo.org/glep/glep-0066.html#commit-messages for
// details.
func (cs *ChangeSet) Prefix() string {
	// changes limited to a single type
	if len(cs.groups) == 1 {
		g := cs.groups[0]
		if len(g.records) == 1 {
			// changes limited to a single object
			return g.records[0].Prefix()
		}
		// multiple changes of the same object type
		paths := make([]string, len(g.records))
		for i, rec := range g.records {
			paths[i] = rec.Info().Path
		}
		common := commonPath(paths)
		if g.kind == KindPackage {
			switch {
			case strings.Contains(common, "/"):
				return common + ": "
			case common != "":
				return common + "/*: "
			default:
				return "*/*: "
			}
		}
		if common != "" {
			return common + ": "
		}
	}

	// no prefix used for global changes
	return ""
}

// commonPath returns the longest common directory-wise prefix of paths.
func commonPath(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	common := strings.Split(paths[0], "/")
	for _, p := range paths[1:] {
		segs := strings.Split(p, "/")
		if len(segs) < len(common) {
			common = common[:len(segs)]
		}
		for i := range common {
			if common[i] != segs[i] {
				common = common[:i]
				break
			}
		}
	}
	return strings.Join(common, "/")
}
