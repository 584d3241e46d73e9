// Package xstring converts between cell text and its stored form in
// worksheet and shared string parts.
//
// Characters that XML 1.0 cannot carry are stored as _xHHHH_, where HHHH is
// the hexadecimal code of the character. A literal _xHHHH_ sequence in the
// text has its leading underscore stored as _x005F_.
package xstring

import (
	"strconv"
	"strings"
)

const escapedUnderscore = "_x005F_"

// Escape returns s in stored form.
func Escape(s string) string {
	if !needsEscape(s) {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + 8)
	for i, r := range s {
		switch {
		case r == '_' && isEscapeAt(s, i):
			sb.WriteString(escapedUnderscore)
		case !isXMLChar(r):
			sb.WriteString(escapeRune(r))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Unescape decodes every _xHHHH_ sequence of a stored string.
func Unescape(s string) string {
	if !strings.Contains(s, "_x") {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); {
		if isEscapeAt(s, i) {
			code, _ := strconv.ParseUint(s[i+2:i+6], 16, 16)
			sb.WriteRune(rune(code))
			i += 7
			continue
		}
		sb.WriteByte(s[i])
		i++
	}
	return sb.String()
}

func needsEscape(s string) bool {
	for i, r := range s {
		if !isXMLChar(r) || (r == '_' && isEscapeAt(s, i)) {
			return true
		}
	}
	return false
}

// isEscapeAt reports whether an _xHHHH_ sequence starts at byte offset i.
func isEscapeAt(s string, i int) bool {
	if i+7 > len(s) || s[i] != '_' || s[i+1] != 'x' || s[i+6] != '_' {
		return false
	}
	for j := i + 2; j < i+6; j++ {
		if !isHex(s[j]) {
			return false
		}
	}
	return true
}

func escapeRune(r rune) string {
	hex := strings.ToUpper(strconv.FormatUint(uint64(r), 16))
	return "_x" + strings.Repeat("0", 4-len(hex)) + hex + "_"
}

// isXMLChar reports whether r is in the XML 1.0 Char production.
// Only BMP characters can fail the check, so every escape fits in four digits.
func isXMLChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r < 0x20:
		return false
	case r >= 0xD800 && r <= 0xDFFF:
		return false
	case r == 0xFFFE || r == 0xFFFF:
		return false
	default:
		return true
	}
}

func isHex(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
