package pkgcommit

import (
	"errors"
	"regexp"
	"strings"
)

// ErrEmptyTemplate is returned when a supplied message template has no
// content.
var ErrEmptyTemplate = errors.New("empty message template")

// wrapWidth is the column at which commit message body paragraphs wrap.
const wrapWidth = 85

// customPrefixRe matches a summary line that already carries a prefix.
var customPrefixRe = regexp.MustCompile(`^\S+: `)

// AssembleInput carries the user-supplied message material.
type AssembleInput struct {
	// Paragraphs are explicit message paragraphs; the first becomes the
	// commit summary line.
	Paragraphs []string
	// Template is message template file content. nil means no template was
	// supplied; non-nil empty content is an error.
	Template []byte
}

// Assemble combines user-supplied message input with the generated
// prefix/summary into final commit message text. It returns nil when
// nothing was supplied and no prefix was generated, in which case the VCS
// should prompt for a message itself.
func Assemble(in AssembleInput, gen GeneratedMessage) (*CommitMessage, error) {
	var message []string
	if in.Template != nil {
		message = splitLines(string(in.Template))
		if len(message) == 0 {
			return nil, ErrEmptyTemplate
		}
		// replace the generic wildcard marker with the generated prefix
		if rest, ok := strings.CutPrefix(message[0], "*: "); ok {
			message[0] = rest
		}
	} else {
		message = append(message, in.Paragraphs...)
	}

	if len(message) > 0 {
		// ignore the generated prefix when using a custom prefix
		if !customPrefixRe.MatchString(message[0]) {
			message[0] = gen.Prefix + message[0]
		}
	} else if gen.Prefix != "" {
		// use the generated summary if a generated prefix exists
		message = append(message, gen.Prefix+gen.Summary)
	}

	if len(message) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	sb.WriteString(message[0])
	for _, paragraph := range message[1:] {
		sb.WriteString("\n\n")
		sb.WriteString(strings.Join(wrap(paragraph, wrapWidth), "\n"))
	}

	// an uncompleted summary line needs an editor pass
	editable := message[0] == "" || strings.HasSuffix(message[0], " ")
	return &CommitMessage{Text: sb.String(), Editable: editable}, nil
}

// splitLines splits s into lines without trailing newline artifacts. Only
// fully empty input yields no lines; "\n" is a single blank line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// wrap greedily word-wraps text at the given width.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	return append(lines, line)
}
