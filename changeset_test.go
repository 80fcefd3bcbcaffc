package pkgcommit_test

import (
	"testing"

	"github.com/fwojciec/pkgcommit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classify(t *testing.T, tokens ...string) *pkgcommit.ChangeSet {
	t.Helper()
	cs, err := pkgcommit.Classify(tokens, testCategories)
	require.NoError(t, err)
	return cs
}

func TestChangeSet_Prefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		tokens []string
		want   string
	}{
		{
			name:   "single package change",
			tokens: []string{"A", "cat/pkg/pkg-1.ebuild"},
			want:   "cat/pkg: ",
		},
		{
			name: "multiple changes to one package",
			tokens: []string{
				"A", "cat/pkg/pkg-1.ebuild",
				"M", "cat/pkg/Manifest",
			},
			want: "cat/pkg: ",
		},
		{
			name: "multiple packages in one category",
			tokens: []string{
				"A", "cat/foo/foo-1.ebuild",
				"A", "cat/bar/bar-1.ebuild",
			},
			want: "cat/*: ",
		},
		{
			name: "packages across categories",
			tokens: []string{
				"A", "cat/foo/foo-1.ebuild",
				"A", "dev-libs/bar/bar-1.ebuild",
			},
			want: "*/*: ",
		},
		{
			name:   "single eclass change",
			tokens: []string{"M", "eclass/toolchain.eclass"},
			want:   "toolchain.eclass: ",
		},
		{
			name: "multiple eclass changes",
			tokens: []string{
				"M", "eclass/toolchain.eclass",
				"M", "eclass/flag-o-matic.eclass",
			},
			want: "eclass: ",
		},
		{
			name:   "single root file",
			tokens: []string{"M", "skel.ebuild"},
			want:   "skel.ebuild: ",
		},
		{
			name: "multiple files in one profiles dir",
			tokens: []string{
				"M", "profiles/arch/amd64/package.mask",
				"M", "profiles/arch/amd64/use.mask",
			},
			want: "profiles/arch/amd64: ",
		},
		{
			name: "mixed kinds get no prefix",
			tokens: []string{
				"A", "cat/pkg/pkg-1.ebuild",
				"M", "header.txt",
			},
			want: "",
		},
		{
			name: "package and eclass changes get no prefix",
			tokens: []string{
				"A", "cat/pkg/pkg-1.ebuild",
				"M", "eclass/toolchain.eclass",
			},
			want: "",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cs := classify(t, tt.tokens...)
			assert.Equal(t, tt.want, cs.Prefix())
		})
	}
}

func TestChangeSet_DuplicatesCollapse(t *testing.T) {
	t.Parallel()

	// repeated (status, path) pairs behave like a single record
	single := classify(t, "A", "cat/pkg/pkg-1.ebuild")
	repeated := classify(t,
		"A", "cat/pkg/pkg-1.ebuild",
		"A", "cat/pkg/pkg-1.ebuild",
	)

	assert.Equal(t, single.Prefix(), repeated.Prefix())
	assert.Len(t, repeated.Pkgs(), 1)
}
