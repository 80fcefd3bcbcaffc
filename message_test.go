package pkgcommit_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/pkgcommit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_ExplicitMessage(t *testing.T) {
	t.Parallel()

	gen := pkgcommit.GeneratedMessage{Prefix: "cat/pkg: ", Summary: "initial import"}

	t.Run("unprefixed message gets the generated prefix", func(t *testing.T) {
		t.Parallel()

		msg, err := pkgcommit.Assemble(pkgcommit.AssembleInput{Paragraphs: []string{"fix build"}}, gen)
		require.NoError(t, err)
		require.NotNil(t, msg)

		assert.Equal(t, "cat/pkg: fix build", msg.Text)
		assert.False(t, msg.Editable)
	})

	t.Run("custom prefix is left alone", func(t *testing.T) {
		t.Parallel()

		msg, err := pkgcommit.Assemble(pkgcommit.AssembleInput{Paragraphs: []string{"prefix: msg"}}, gen)
		require.NoError(t, err)
		require.NotNil(t, msg)

		assert.Equal(t, "prefix: msg", msg.Text)
	})

	t.Run("body paragraphs wrap at 85 columns", func(t *testing.T) {
		t.Parallel()

		body := strings.Repeat("word ", 40)
		msg, err := pkgcommit.Assemble(pkgcommit.AssembleInput{
			Paragraphs: []string{"summary", body, "trailer"},
		}, pkgcommit.GeneratedMessage{})
		require.NoError(t, err)
		require.NotNil(t, msg)

		paragraphs := strings.Split(msg.Text, "\n\n")
		require.Len(t, paragraphs, 3)
		assert.Equal(t, "summary", paragraphs[0])
		assert.Equal(t, "trailer", paragraphs[2])
		for _, line := range strings.Split(paragraphs[1], "\n") {
			assert.LessOrEqual(t, len(line), 85)
		}
		assert.Equal(t, strings.Fields(body), strings.Fields(paragraphs[1]))
	})

	t.Run("empty summary line forces an editable message", func(t *testing.T) {
		t.Parallel()

		msg, err := pkgcommit.Assemble(pkgcommit.AssembleInput{Paragraphs: []string{""}}, gen)
		require.NoError(t, err)
		require.NotNil(t, msg)

		assert.Equal(t, "cat/pkg: ", msg.Text)
		assert.True(t, msg.Editable)
	})
}

func TestAssemble_Template(t *testing.T) {
	t.Parallel()

	gen := pkgcommit.GeneratedMessage{Prefix: "cat/pkg: "}

	t.Run("wildcard marker is replaced by the generated prefix", func(t *testing.T) {
		t.Parallel()

		msg, err := pkgcommit.Assemble(pkgcommit.AssembleInput{
			Template: []byte("*: update homepage\n"),
		}, gen)
		require.NoError(t, err)
		require.NotNil(t, msg)

		assert.Equal(t, "cat/pkg: update homepage", msg.Text)
		assert.False(t, msg.Editable)
	})

	t.Run("template without marker keeps its own prefix", func(t *testing.T) {
		t.Parallel()

		msg, err := pkgcommit.Assemble(pkgcommit.AssembleInput{
			Template: []byte("other: update homepage\n"),
		}, gen)
		require.NoError(t, err)
		require.NotNil(t, msg)

		assert.Equal(t, "other: update homepage", msg.Text)
	})

	t.Run("template body lines become wrapped paragraphs", func(t *testing.T) {
		t.Parallel()

		msg, err := pkgcommit.Assemble(pkgcommit.AssembleInput{
			Template: []byte("*: summary\nbody text\n"),
		}, gen)
		require.NoError(t, err)
		require.NotNil(t, msg)

		assert.Equal(t, "cat/pkg: summary\n\nbody text", msg.Text)
	})

	t.Run("empty template is an error", func(t *testing.T) {
		t.Parallel()

		_, err := pkgcommit.Assemble(pkgcommit.AssembleInput{Template: []byte("")}, gen)
		assert.ErrorIs(t, err, pkgcommit.ErrEmptyTemplate)
	})

	t.Run("blank-line template yields an editable prefixed summary", func(t *testing.T) {
		t.Parallel()

		msg, err := pkgcommit.Assemble(pkgcommit.AssembleInput{Template: []byte("\n")}, gen)
		require.NoError(t, err)
		require.NotNil(t, msg)

		assert.Equal(t, "cat/pkg: ", msg.Text)
		assert.True(t, msg.Editable)
	})
}

func TestAssemble_Generated(t *testing.T) {
	t.Parallel()

	t.Run("prefix and summary become the message", func(t *testing.T) {
		t.Parallel()

		msg, err := pkgcommit.Assemble(pkgcommit.AssembleInput{}, pkgcommit.GeneratedMessage{
			Prefix:  "cat/pkg: ",
			Summary: "initial import",
		})
		require.NoError(t, err)
		require.NotNil(t, msg)

		assert.Equal(t, "cat/pkg: initial import", msg.Text)
		assert.False(t, msg.Editable)
	})

	t.Run("prefix without summary is editable", func(t *testing.T) {
		t.Parallel()

		msg, err := pkgcommit.Assemble(pkgcommit.AssembleInput{}, pkgcommit.GeneratedMessage{
			Prefix: "cat/pkg: ",
		})
		require.NoError(t, err)
		require.NotNil(t, msg)

		assert.Equal(t, "cat/pkg: ", msg.Text)
		assert.True(t, msg.Editable)
	})

	t.Run("nothing to assemble", func(t *testing.T) {
		t.Parallel()

		msg, err := pkgcommit.Assemble(pkgcommit.AssembleInput{}, pkgcommit.GeneratedMessage{})
		require.NoError(t, err)
		assert.Nil(t, msg)
	})
}
