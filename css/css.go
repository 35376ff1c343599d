// Package css minifies CSS by removing comments and redundant whitespace and
// semicolons in a single pass. It performs lexical minification only: no
// selector, color or value rewriting.
package css

import (
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/WilliamThogersen/htmlmin"
)

// Minifier is a CSS minifier. It carries no options.
type Minifier struct{}

// Minify minifies CSS data, it reads from r and writes to w.
func Minify(m *minify.M, w io.Writer, r io.Reader, params map[string]string) error {
	return (&Minifier{}).Minify(m, w, r, params)
}

// Minify minifies CSS data, it reads from r and writes to w.
func (o *Minifier) Minify(_ *minify.M, w io.Writer, r io.Reader, _ map[string]string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	_, err = w.Write(MinifyBytes(b))
	return err
}

// MinifyString minifies a CSS string.
func MinifyString(s string) string {
	return string(MinifyBytes([]byte(s)))
}

// MinifyBytes minifies a CSS byte slice in a single left-to-right pass with
// one byte of lookback for spacing decisions. It is total: unterminated
// strings or comments consume to the end of the input instead of failing.
// The input is not modified.
func MinifyBytes(b []byte) []byte {
	out := make([]byte, 0, len(b))
	var last byte // previous significant output byte
	for i := 0; i < len(b); {
		r, n := utf8.DecodeRune(b[i:])
		switch {
		case r == '"' || r == '\'':
			i++
			out, i = appendStringLiteral(out, b, i, byte(r))
			last = byte(r)
		case r == '/':
			if i+1 < len(b) && b[i+1] == '*' {
				i = skipComment(b, i+2)
			} else {
				out = append(out, '/')
				last = '/'
				i++
			}
		case unicode.IsSpace(r):
			i = skipSpace(b, i+n)
			if last != ' ' && needsSpace(last, b, i) {
				out = append(out, ' ')
			}
			if 0 < len(out) {
				last = out[len(out)-1]
			}
		case r == ':' || r == ',' || r == '{' || r == '>' || r == '+' || r == '~':
			if last == ' ' {
				out = out[:len(out)-1]
			}
			out = append(out, byte(r))
			last = byte(r)
			i++
		case r == ';':
			i++
			// the last declaration in a block never needs its semicolon
			if j := skipSpace(b, i); j < len(b) && b[j] == '}' {
				last = ';'
			} else {
				if last == ' ' {
					out = out[:len(out)-1]
				}
				out = append(out, ';')
				last = ';'
			}
		case r == '}':
			if (last == ' ' || last == ';') && 0 < len(out) && (out[len(out)-1] == ' ' || out[len(out)-1] == ';') {
				out = out[:len(out)-1]
			}
			out = append(out, '}')
			last = '}'
			i++
		default:
			out = append(out, b[i:i+n]...)
			last = b[i+n-1]
			i += n
		}
	}
	if last == ' ' && 0 < len(out) && out[len(out)-1] == ' ' {
		out = out[:len(out)-1]
	}
	return trimLeftSpace(out)
}

// appendStringLiteral copies a string literal verbatim, escape pairs
// included, stopping after the matching quote or at the end of the input.
func appendStringLiteral(out, b []byte, i int, quote byte) ([]byte, int) {
	out = append(out, quote)
	for i < len(b) {
		c := b[i]
		out = append(out, c)
		i++
		if c == quote {
			break
		}
		if c == '\\' && i < len(b) {
			_, n := utf8.DecodeRune(b[i:])
			out = append(out, b[i:i+n]...)
			i += n
		}
	}
	return out, i
}

func skipComment(b []byte, i int) int {
	prev := byte(' ')
	for i < len(b) {
		c := b[i]
		i++
		if prev == '*' && c == '/' {
			break
		}
		prev = c
	}
	return i
}

// needsSpace reports whether a collapsed space must separate the output from
// the input resuming at i. Whitespace adjacent to punctuation that never
// needs separation is dropped entirely.
func needsSpace(last byte, b []byte, i int) bool {
	switch last {
	case '{', '}', ':', ';', ',', '>', '+', '~', '(', '[':
		return false
	}
	if i < len(b) {
		switch b[i] {
		case '{', '}', ':', ';', ',', ')', ']':
			return false
		}
	}
	return true
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

func trimLeftSpace(b []byte) []byte {
	for 0 < len(b) {
		r, n := utf8.DecodeRune(b)
		if !unicode.IsSpace(r) {
			break
		}
		b = b[n:]
	}
	return b
}
