package html

import (
	"bytes"
	"unicode"
	"unicode/utf8"
)

// cleanupSpacing is the final pass over the driver output when whitespace
// collapsing is enabled. It drops whitespace after >, whitespace before <,
// and spaces around =, and collapses any remaining run to a single space.
func cleanupSpacing(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); {
		r, n := utf8.DecodeRune(b[i:])
		i += n
		switch {
		case r == '>':
			out = append(out, '>')
			i = skipSpace(b, i)
		case unicode.IsSpace(r):
			if i < len(b) && b[i] == '<' {
				break // no space needed before a tag
			}
			if len(out) == 0 || out[len(out)-1] != ' ' {
				out = append(out, ' ')
			}
			i = skipSpace(b, i)
		case r == '=':
			for 0 < len(out) && out[len(out)-1] == ' ' {
				out = out[:len(out)-1]
			}
			out = append(out, '=')
			for i < len(b) && b[i] == ' ' {
				i++
			}
		default:
			out = append(out, b[i-n:i]...)
		}
	}
	return bytes.TrimSpace(out)
}

func skipSpace(b []byte, i int) int {
	for i < len(b) {
		r, n := utf8.DecodeRune(b[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += n
	}
	return i
}
