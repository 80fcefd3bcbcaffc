package gitdiff_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/pkgcommit"
	"github.com/fwojciec/pkgcommit/gitdiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eapiBumpDiff = `diff --git a/cat/pkg/pkg-1.ebuild b/cat/pkg/pkg-1.ebuild
index 1234567..89abcde 100644
--- a/cat/pkg/pkg-1.ebuild
+++ b/cat/pkg/pkg-1.ebuild
@@ -1,4 +1,4 @@
 # Copyright 1999-2026 Gentoo Authors
-EAPI=7
+EAPI=8

 DESCRIPTION="test package"
`

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("parses a single file modification", func(t *testing.T) {
		t.Parallel()

		p := gitdiff.NewParser()
		diff, err := p.Parse(strings.NewReader(eapiBumpDiff))
		require.NoError(t, err)

		require.Len(t, diff.Files, 1)
		file := diff.Files[0]
		assert.Equal(t, "cat/pkg/pkg-1.ebuild", file.OldPath)
		assert.Equal(t, "cat/pkg/pkg-1.ebuild", file.NewPath)
		require.Len(t, file.Hunks, 1)

		var added, deleted, unchanged int
		for _, line := range file.Hunks[0].Lines {
			switch line.Type {
			case pkgcommit.LineAdded:
				added++
				assert.Equal(t, "EAPI=8\n", line.Content)
			case pkgcommit.LineDeleted:
				deleted++
				assert.Equal(t, "EAPI=7\n", line.Content)
			case pkgcommit.LineContext:
				unchanged++
			}
		}
		assert.Equal(t, 1, added)
		assert.Equal(t, 1, deleted)
		assert.Equal(t, 2, unchanged)
	})

	t.Run("empty input yields an empty diff", func(t *testing.T) {
		t.Parallel()

		p := gitdiff.NewParser()
		diff, err := p.Parse(strings.NewReader(""))
		require.NoError(t, err)

		assert.Empty(t, diff.Files)
	})

	t.Run("malformed input is an error", func(t *testing.T) {
		t.Parallel()

		p := gitdiff.NewParser()
		_, err := p.Parse(strings.NewReader("diff --git a/x b/x\n@@ bogus @@\n"))
		assert.Error(t, err)
	})
}
