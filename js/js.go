// Package js minifies JavaScript by removing comments and redundant
// whitespace in a single pass. String, template and regex literals are copied
// verbatim; whether a slash starts a regex literal or is the division
// operator is decided by a heuristic over the output emitted so far.
package js

import (
	"bytes"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/WilliamThogersen/htmlmin"
)

// Minifier is a JS minifier. It carries no options.
type Minifier struct{}

// Minify minifies JS data, it reads from r and writes to w.
func Minify(m *minify.M, w io.Writer, r io.Reader, params map[string]string) error {
	return (&Minifier{}).Minify(m, w, r, params)
}

// Minify minifies JS data, it reads from r and writes to w.
func (o *Minifier) Minify(_ *minify.M, w io.Writer, r io.Reader, _ map[string]string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	_, err = w.Write(MinifyBytes(b))
	return err
}

// MinifyString minifies a JS string.
func MinifyString(s string) string {
	return string(MinifyBytes([]byte(s)))
}

// MinifyBytes minifies a JS byte slice in a single left-to-right pass. It is
// total: unterminated literals and comments consume to the end of the input,
// and a slash that cannot be classified is treated as division, which keeps
// the remainder of the input from being swallowed as a regex body. The input
// is not modified.
func MinifyBytes(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); {
		r, n := utf8.DecodeRune(b[i:])
		switch {
		case r == '"' || r == '\'':
			out, i = appendStringLiteral(out, b, i+1, byte(r))
		case r == '`':
			out, i = appendTemplateLiteral(out, b, i+1)
		case r == '/':
			if i+1 < len(b) && b[i+1] == '/' {
				i = skipLineComment(b, i+2)
			} else if i+1 < len(b) && b[i+1] == '*' {
				i = skipBlockComment(b, i+2)
			} else if isRegexContext(out) {
				out, i = appendRegex(out, b, i+1)
			} else {
				out = append(out, '/')
				i++
			}
		case unicode.IsSpace(r):
			i = skipSpace(b, i+n)
			// a single space survives only between two identifier characters
			if 0 < len(out) && i < len(b) {
				prev, _ := utf8.DecodeLastRune(out)
				next, _ := utf8.DecodeRune(b[i:])
				if isIdentChar(prev) && isIdentChar(next) {
					out = append(out, ' ')
				}
			}
		default:
			out = append(out, b[i:i+n]...)
			i += n
		}
	}
	return bytes.TrimSpace(out)
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

// appendTemplateLiteral copies a template literal verbatim, tracking ${ }
// nesting depth so a backtick inside a substitution does not terminate it.
func appendTemplateLiteral(out, b []byte, i int) ([]byte, int) {
	out = append(out, '`')
	depth := 0
	for i < len(b) {
		c := b[i]
		out = append(out, c)
		i++
		switch c {
		case '`':
			if depth == 0 {
				return out, i
			}
		case '\\':
			if i < len(b) {
				_, n := utf8.DecodeRune(b[i:])
				out = append(out, b[i:i+n]...)
				i += n
			}
		case '$':
			if i < len(b) && b[i] == '{' {
				out = append(out, '{')
				i++
				depth++
			}
		case '}':
			if 0 < depth {
				depth--
			}
		}
	}
	return out, i
}

// appendRegex copies a regex literal verbatim up to the unescaped slash that
// closes it, slashes inside a character class excluded, plus any flags.
// A newline aborts the literal since regexes cannot span lines.
func appendRegex(out, b []byte, i int) ([]byte, int) {
	out = append(out, '/')
	inClass := false
	for i < len(b) {
		c := b[i]
		out = append(out, c)
		i++
		switch c {
		case '/':
			if !inClass {
				for i < len(b) && isRegexFlag(b[i]) {
					out = append(out, b[i])
					i++
				}
				return out, i
			}
		case '\\':
			if i < len(b) {
				_, n := utf8.DecodeRune(b[i:])
				out = append(out, b[i:i+n]...)
				i += n
			}
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '\n', '\r':
			return out, i
		}
	}
	return out, i
}

func isRegexFlag(c byte) bool {
	switch c {
	case 'g', 'i', 'm', 's', 'u', 'y':
		return true
	}
	return false
}

func skipLineComment(b []byte, i int) int {
	for i < len(b) {
		c := b[i]
		i++
		if c == '\n' {
			break
		}
	}
	return i
}

func skipBlockComment(b []byte, i int) int {
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

var doubleOperators = [...]string{"++", "--", "**", "==", "!=", "<=", ">=", "<<", ">>", "&&", "||", "??"}

var regexKeywords = [...]string{
	"return", "throw", "new", "typeof", "void", "delete",
	"in", "of", "instanceof", "yield", "await", "case",
}

// isRegexContext reports whether a slash at this point starts a regex literal
// rather than a division, judged by the trimmed output produced so far. The
// fallback is division: misreading a division as a regex would swallow the
// rest of the input as a regex body, the reverse stays local.
func isRegexContext(out []byte) bool {
	t := bytes.TrimRightFunc(out, unicode.IsSpace)
	if len(t) == 0 {
		return true // start of program
	}
	last, size := utf8.DecodeLastRune(t)

	switch last {
	case '(', '[', '{', ',', ';', ':', '=', '!', '&', '|', '?', '~':
		return true
	}
	for _, op := range doubleOperators {
		if bytes.HasSuffix(t, []byte(op)) {
			return true
		}
	}
	switch last {
	case '+', '-', '*', '%', '<', '>':
		// binary when following a value, unary (hence regex) otherwise
		if size < len(t) {
			before, _ := utf8.DecodeLastRune(t[:len(t)-size])
			if isIdentChar(before) || before == ')' || before == ']' {
				return false
			}
		}
		return true
	}
	if endsWithRegexKeyword(t) {
		return true
	}
	if isIdentChar(last) || last == ')' || last == ']' {
		return false
	}
	return false // conservative fallback
}

func endsWithRegexKeyword(t []byte) bool {
	for _, kw := range regexKeywords {
		if !bytes.HasSuffix(t, []byte(kw)) {
			continue
		}
		if len(t) == len(kw) {
			return true
		}
		before, _ := utf8.DecodeLastRune(t[:len(t)-len(kw)])
		if !isIdentChar(before) {
			return true
		}
	}
	return false
}

func isIdentChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$'
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
