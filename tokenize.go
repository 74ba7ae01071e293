package tridiff

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Mode selects the granularity used to split text into tokens.
type Mode int

const (
	// ModeWord splits text into alternating runs of whitespace and non-whitespace.
	ModeWord Mode = iota
	// ModeLine splits text into lines, each keeping its line terminator.
	ModeLine
	// ModeChar splits text into single code points.
	ModeChar
)

// DefaultMode is the granularity used when none is selected.
const DefaultMode = ModeWord

// String returns the name accepted by ParseMode.
func (m Mode) String() string {
	switch m {
	case ModeLine:
		return "line"
	case ModeWord:
		return "word"
	case ModeChar:
		return "char"
	default:
		return "unknown"
	}
}

// Modes returns every granularity in the order they are offered to users.
func Modes() []Mode {
	return []Mode{ModeLine, ModeWord, ModeChar}
}

// ParseMode converts "line", "word" or "char" (any case) into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "line":
		return ModeLine, nil
	case "word":
		return ModeWord, nil
	case "char":
		return ModeChar, nil
	default:
		return 0, fmt.Errorf("%w: %q (use line, word, or char)", ErrUnknownMode, s)
	}
}

// Tokenize splits text into tokens according to mode. Joining the
// returned tokens in order always reproduces text exactly.
func Tokenize(text string, mode Mode) []string {
	next := nextWord
	switch mode {
	case ModeLine:
		next = nextLine
	case ModeChar:
		next = nextChar
	}

	var tokens []string
	for len(text) > 0 {
		n := next(text)
		tokens = append(tokens, text[:n])
		text = text[n:]
	}
	return tokens
}

// nextChar returns the byte length of the first code point in s.
// Invalid bytes are consumed one at a time.
func nextChar(s string) int {
	_, size := utf8.DecodeRuneInString(s)
	return size
}

// nextWord returns the byte length of the leading run of whitespace or
// non-whitespace in s.
func nextWord(s string) int {
	first, size := utf8.DecodeRuneInString(s)
	space := isWordSpace(first)
	i := size
	for i < len(s) {
		r, n := utf8.DecodeRuneInString(s[i:])
		if isWordSpace(r) != space {
			break
		}
		i += n
	}
	return i
}

// isWordSpace reports whether r separates words: Unicode white space
// plus the file, group, record and unit separators.
func isWordSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

// nextLine returns the byte length of the first line in s, including its
// terminator if there is one.
func nextLine(s string) int {
	content, term := lineBreak(s)
	return content + term
}

// lineBreak scans s for the first line break and returns the length of
// the line content and of the terminator that follows it (0 at end of
// input). "\r\n" counts as a single terminator.
func lineBreak(s string) (content, term int) {
	for i := 0; i < len(s); {
		r, n := utf8.DecodeRuneInString(s[i:])
		if isLineBreak(r) {
			if r == '\r' && i+1 < len(s) && s[i+1] == '\n' {
				n = 2
			}
			return i, n
		}
		i += n
	}
	return len(s), 0
}

// isLineBreak reports whether r ends a line: LF, CR, VT, FF, the file,
// group and record separators, NEL, and the Unicode line and paragraph
// separators.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// SplitLines splits text into lines with their terminators removed.
// A trailing terminator does not produce an extra empty line.
func SplitLines(text string) []string {
	var lines []string
	for len(text) > 0 {
		content, term := lineBreak(text)
		lines = append(lines, text[:content])
		text = text[content+term:]
	}
	return lines
}
