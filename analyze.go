package yamlstream

import (
	"strings"
	"unicode/utf8"
)

// scalarAnalysis records which styles can represent a scalar's text.
type scalarAnalysis struct {
	empty     bool
	multiline bool

	plainAllowed  bool
	singleAllowed bool
	blockAllowed  bool
}

func isPrintable(r rune) bool {
	switch {
	case r == 0x0A:
		return true
	case r >= 0x20 && r <= 0x7E:
		return true
	case r == 0x85:
		return true
	case r >= 0xA0 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return r != 0xFEFF
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}

func isBreak(r rune) bool {
	return r == '\n' || r == '\r' || r == 0x85 || r == 0x2028 || r == 0x2029
}

func isBlankOrEnd(s string, i int) bool {
	return i >= len(s) || s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r'
}

func analyzeScalar(value string) scalarAnalysis {
	if value == "" {
		return scalarAnalysis{
			empty:         true,
			plainAllowed:  true,
			singleAllowed: true,
		}
	}

	var (
		indicators, lineBreaks, special bool

		leadingSpace, leadingBreak   bool
		trailingSpace, trailingBreak bool
		breakSpace, spaceBreak       bool

		prevSpace, prevBreak bool
	)

	if strings.HasPrefix(value, "---") || strings.HasPrefix(value, "...") {
		indicators = true
	}

	precededByWhitespace := true
	for i := 0; i < len(value); {
		r, size := utf8.DecodeRuneInString(value[i:])
		next := i + size
		followedByWhitespace := isBlankOrEnd(value, next)
		first, last := i == 0, next >= len(value)

		if first {
			switch r {
			case '#', ',', '[', ']', '{', '}', '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`':
				indicators = true
			case '?', ':', '-':
				if followedByWhitespace {
					indicators = true
				}
			}
		} else {
			switch r {
			case ':':
				if followedByWhitespace {
					indicators = true
				}
			case '#':
				if precededByWhitespace {
					indicators = true
				}
			}
		}

		if r == utf8.RuneError && size == 1 || !isPrintable(r) {
			special = true
		}
		if isBreak(r) {
			lineBreaks = true
			if r != '\n' {
				special = true
			}
		}

		switch {
		case r == ' ':
			if first {
				leadingSpace = true
			}
			if last {
				trailingSpace = true
			}
			if prevBreak {
				breakSpace = true
			}
			prevSpace, prevBreak = true, false
		case isBreak(r):
			if first {
				leadingBreak = true
			}
			if last {
				trailingBreak = true
			}
			if prevSpace {
				spaceBreak = true
			}
			prevSpace, prevBreak = false, true
		default:
			prevSpace, prevBreak = false, false
		}

		precededByWhitespace = r == ' ' || r == '\t' || isBreak(r)
		i = next
	}

	a := scalarAnalysis{
		multiline:     lineBreaks,
		plainAllowed:  true,
		singleAllowed: true,
		blockAllowed:  true,
	}
	if leadingSpace || leadingBreak || trailingSpace || trailingBreak {
		a.plainAllowed = false
	}
	if trailingSpace {
		a.blockAllowed = false
	}
	if breakSpace {
		a.plainAllowed = false
		a.singleAllowed = false
	}
	if spaceBreak || special {
		a.plainAllowed = false
		a.singleAllowed = false
		a.blockAllowed = false
	}
	if lineBreaks {
		a.plainAllowed = false
		a.singleAllowed = false
	}
	if indicators {
		a.plainAllowed = false
	}
	return a
}

// plainKeepsTag reports whether value written plain resolves back to tag.
func plainKeepsTag(tag Tag, value string) bool {
	switch tag {
	case StrTag, "":
		return !LooksLikeLiteral(value)
	case TimestampTag:
		return !LooksLikeLiteral(value) || timestampLiteral.MatchString(value)
	default:
		return true
	}
}
