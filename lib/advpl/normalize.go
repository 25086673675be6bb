// Package advpl knows the lexical surface of AdvPL/Protheus sources: line
// normalization for semantic comparison and the declaration shapes the
// review rules care about. The language is case-insensitive, so normalized
// forms are upper-cased.
package advpl

import (
	"regexp"
	"strings"
)

var (
	whitespaceRE = regexp.MustCompile(`\s+`)
	assignRE     = regexp.MustCompile(`\s*(:=)\s*`)
	commaRE      = regexp.MustCompile(`\s*(,)\s*`)
	openParenRE  = regexp.MustCompile(`\s*(\()\s*`)
	closeParenRE = regexp.MustCompile(`\s*(\))\s*`)
)

// StripInlineComment removes a trailing // comment, but never inside a
// URL-like token: a // immediately preceded by : is kept.
func StripInlineComment(line string) string {
	if line == "" {
		return ""
	}

	idx := 0
	for {
		pos := strings.Index(line[idx:], "//")
		if pos == -1 {
			return line
		}
		pos += idx

		if pos > 0 && line[pos-1] == ':' {
			idx = pos + 2
			continue
		}

		return line[:pos]
	}
}

// Normalize canonicalizes a line for semantic equality: strips the inline
// comment, collapses whitespace, removes spacing around := , ( ) and
// upper-cases the result. Blank lines and pure comments normalize to "".
// Two lines are semantically equal iff their normalized forms are equal
// and non-empty.
func Normalize(line string) string {
	if line == "" {
		return ""
	}

	s := strings.TrimSpace(StripInlineComment(line))
	if s == "" {
		return ""
	}

	s = whitespaceRE.ReplaceAllString(s, " ")
	s = assignRE.ReplaceAllString(s, "$1")
	s = commaRE.ReplaceAllString(s, "$1")
	s = openParenRE.ReplaceAllString(s, "$1")
	s = closeParenRE.ReplaceAllString(s, "$1")

	return strings.ToUpper(s)
}
