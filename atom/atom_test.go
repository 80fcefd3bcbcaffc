package atom_test

import (
	"sort"
	"testing"

	"github.com/fwojciec/pkgcommit/atom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("parses category and name", func(t *testing.T) {
		t.Parallel()

		a, err := atom.New("dev-libs/foo")
		require.NoError(t, err)

		assert.Equal(t, "dev-libs", a.Category)
		assert.Equal(t, "foo", a.Name)
		assert.Nil(t, a.Version)
		assert.Equal(t, "dev-libs/foo", a.String())
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		t.Parallel()

		for _, s := range []string{"", "foo", "/foo", "cat/", "cat/foo/bar", "-cat/foo"} {
			_, err := atom.New(s)
			assert.ErrorIs(t, err, atom.ErrMalformed, "input %q", s)
		}
	})
}

func TestParseVersioned(t *testing.T) {
	t.Parallel()

	tests := []struct {
		nameVer string
		name    string
		version string
	}{
		{"pkg-1", "pkg", "1"},
		{"pkg-1.2.3", "pkg", "1.2.3"},
		{"pkg-1.2.3-r2", "pkg", "1.2.3-r2"},
		{"pkg-0_rc1", "pkg", "0_rc1"},
		{"foo-bar-2.0b_alpha3", "foo-bar", "2.0b_alpha3"},
		{"gcc-13.2.0_p20240210", "gcc", "13.2.0_p20240210"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.nameVer, func(t *testing.T) {
			t.Parallel()

			a, err := atom.ParseVersioned("cat", tt.nameVer)
			require.NoError(t, err)

			assert.Equal(t, "cat", a.Category)
			assert.Equal(t, tt.name, a.Name)
			require.NotNil(t, a.Version)
			assert.Equal(t, tt.version, a.Version.String())
			assert.Equal(t, "cat/"+tt.nameVer, a.String())
		})
	}

	t.Run("rejects names without a version", func(t *testing.T) {
		t.Parallel()

		for _, s := range []string{"pkg", "pkg-", "pkg-x", "-1"} {
			_, err := atom.ParseVersioned("cat", s)
			assert.ErrorIs(t, err, atom.ErrMalformed, "input %q", s)
		}
	})
}

func TestUnversioned(t *testing.T) {
	t.Parallel()

	a, err := atom.ParseVersioned("cat", "pkg-1.0-r1")
	require.NoError(t, err)

	u := a.Unversioned()
	assert.Equal(t, "cat/pkg", u.String())
	assert.Nil(t, u.Version)
	// the original atom keeps its version
	assert.NotNil(t, a.Version)
}

func TestParseVersion_Fields(t *testing.T) {
	t.Parallel()

	v, err := atom.ParseVersion("1.2.3b_rc1-r2")
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", "3"}, v.Components)
	assert.Equal(t, byte('b'), v.Letter)
	assert.Equal(t, []atom.Suffix{{Name: "rc", Number: 1}}, v.Suffixes)
	assert.Equal(t, 2, v.Revision)
}

func TestCompareVersions(t *testing.T) {
	t.Parallel()

	// each version is strictly less than the next
	ordered := []string{
		"0",
		"1_alpha",
		"1_alpha1",
		"1_beta",
		"1_pre",
		"1_rc1",
		"1",
		"1-r1",
		"1_p1",
		"1.0.1",
		"1.1",
		"1.2a",
		"2",
		"10",
	}
	for i := 0; i < len(ordered)-1; i++ {
		lo, err := atom.ParseVersion(ordered[i])
		require.NoError(t, err)
		hi, err := atom.ParseVersion(ordered[i+1])
		require.NoError(t, err)

		assert.Equal(t, -1, atom.CompareVersions(lo, hi), "%s < %s", ordered[i], ordered[i+1])
		assert.Equal(t, 1, atom.CompareVersions(hi, lo), "%s > %s", ordered[i+1], ordered[i])
	}

	t.Run("equal versions", func(t *testing.T) {
		t.Parallel()

		a, err := atom.ParseVersion("1.2.3_rc1-r2")
		require.NoError(t, err)
		b, err := atom.ParseVersion("1.2.3_rc1-r2")
		require.NoError(t, err)

		assert.Zero(t, atom.CompareVersions(a, b))
	})

	t.Run("leading zero components compare as fractions", func(t *testing.T) {
		t.Parallel()

		a, err := atom.ParseVersion("1.01")
		require.NoError(t, err)
		b, err := atom.ParseVersion("1.1")
		require.NoError(t, err)

		assert.Equal(t, -1, atom.CompareVersions(a, b))
	})
}

func TestCompare_SortsAtoms(t *testing.T) {
	t.Parallel()

	var atoms []*atom.Atom
	for _, s := range []string{"pkg-2", "pkg-1", "pkg-10", "pkg-1-r1"} {
		a, err := atom.ParseVersioned("cat", s)
		require.NoError(t, err)
		atoms = append(atoms, a)
	}

	sort.Slice(atoms, func(i, j int) bool { return atom.Compare(atoms[i], atoms[j]) < 0 })

	var got []string
	for _, a := range atoms {
		got = append(got, a.String())
	}
	assert.Equal(t, []string{"cat/pkg-1", "cat/pkg-1-r1", "cat/pkg-2", "cat/pkg-10"}, got)
}
