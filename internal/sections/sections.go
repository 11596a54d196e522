// Package sections locates resume sections by heading keyword.
//
// A section is a fixed window of lines starting at the first line that mentions
// one of the section's keywords. There is no layout parsing: the window simply
// runs for WindowSize lines or until the text ends.
package sections

import (
	"strings"
	"unicode/utf8"
)

// WindowSize is the number of lines returned for a section, heading included.
const WindowSize = 10

// Kind names a resume section.
type Kind string

const (
	// Experience covers work history.
	Experience Kind = "experience"
	// Education covers degrees and schooling.
	Education Kind = "education"
	// Certifications covers professional certifications.
	Certifications Kind = "certifications"
)

// Keywords returns the heading keywords for kind. A fresh slice is returned on every call.
func Keywords(kind Kind) []string {
	switch kind {
	case Experience:
		return []string{"experience", "employment", "work history"}
	case Education:
		return []string{"education", "degree"}
	case Certifications:
		return []string{"certification", "certifications"}
	default:
		return nil
	}
}

// Extract returns the window of lines starting at the first line that contains
// any keyword (case-insensitive substring), joined by newlines. It returns ""
// when no line matches. Empty keywords never match.
func Extract(text string, keywords []string) string {
	needles := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw != "" {
			needles = append(needles, strings.ToLower(kw))
		}
	}
	if text == "" || len(needles) == 0 {
		return ""
	}

	lines := splitLines(text)
	for i, line := range lines {
		lowered := strings.ToLower(line)
		for _, needle := range needles {
			if strings.Contains(lowered, needle) {
				end := min(i+WindowSize, len(lines))
				return strings.Join(lines[i:end], "\n")
			}
		}
	}
	return ""
}

// ExtractKind is Extract with the keyword set of kind.
func ExtractKind(text string, kind Kind) string {
	return Extract(text, Keywords(kind))
}

// isLineBreak reports whether r ends a line: LF, CR, VT, FF, the file, group
// and record separators, NEL and the Unicode line and paragraph separators.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// splitLines splits text at every line break, treating CRLF as one break. A
// trailing line break does not start an extra empty line.
func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size
		if !isLineBreak(r) {
			continue
		}
		lines = append(lines, text[start:i-size])
		if r == '\r' && i < len(text) && text[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}
