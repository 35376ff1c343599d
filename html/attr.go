package html

import (
	"bytes"
	"unicode"
	"unicode/utf8"

	"github.com/WilliamThogersen/htmlmin/css"
	"github.com/tdewolff/parse/v2"
)

// appendAttribute processes one raw attribute fragment (name or name=value,
// quotes included) and appends the minified form to dst. Attributes are never
// rejected: fragments are either rewritten, passed through or dropped.
func (o *Minifier) appendAttribute(dst, attr, tag []byte) []byte {
	attr = bytes.TrimSpace(attr)
	if len(attr) == 0 {
		return dst
	}

	i := bytes.IndexByte(attr, '=')
	if i == -1 {
		// boolean syntax, bare name
		key := toLowerCopy(attr)
		if o.RemoveEmptyAttributes && emptyRemovableAttributes[string(key)] {
			return dst
		}
		dst = append(dst, ' ')
		return append(dst, key...)
	}

	key := toLowerCopy(bytes.TrimSpace(attr[:i]))
	val := extractAttrVal(bytes.TrimSpace(attr[i+1:]))

	if o.CollapseBooleanAttributes && booleanAttributes[string(key)] {
		dst = append(dst, ' ')
		return append(dst, key...)
	}
	if o.RemoveEmptyAttributes && len(val) == 0 && emptyRemovableAttributes[string(key)] {
		return dst
	}
	if o.RemoveDefaultAttributes && skipAttribute(key, val, tag) {
		return dst
	}

	dst = append(dst, ' ')
	dst = append(dst, key...)
	dst = append(dst, '=')
	return o.appendAttrVal(dst, key, val)
}

// skipAttribute returns true for attributes that carry no information: empty
// values of a fixed name set and values equal to the HTML default.
func skipAttribute(key, val, tag []byte) bool {
	if booleanAttributes[string(key)] {
		return false
	}
	if len(val) == 0 {
		if emptyRemovableAttributes[string(key)] {
			return true
		}
		switch string(key) {
		case "type", "value", "alt", "title":
			return true
		}
	}
	return isDefaultAttrVal(tag, key, val)
}

func (o *Minifier) appendAttrVal(dst, key, val []byte) []byte {
	if bytes.Equal(key, styleBytes) {
		// inline styles do not need the trailing semicolon
		val = bytes.TrimRight(css.MinifyBytes(val), ";")
	} else if bytes.Equal(key, classBytes) && bytes.Contains(val, []byte("  ")) {
		val = collapseClassVal(val)
	}
	if o.RemoveAttributeQuotes && isUnquotedAttrVal(val) {
		return append(dst, val...)
	}
	dst = append(dst, '"')
	dst = append(dst, val...)
	return append(dst, '"')
}

// extractAttrVal strips a matching pair of surrounding quotes.
func extractAttrVal(v []byte) []byte {
	if len(v) >= 2 && (v[0] == '"' && v[len(v)-1] == '"' || v[0] == '\'' && v[len(v)-1] == '\'') {
		return v[1 : len(v)-1]
	}
	return v
}

// collapseClassVal reduces whitespace runs in a class list to single spaces.
// Leading whitespace is dropped, a trailing space remains a single space.
func collapseClassVal(b []byte) []byte {
	out := make([]byte, 0, len(b))
	prevSpace := false
	for i := 0; i < len(b); {
		r, n := utf8.DecodeRune(b[i:])
		if unicode.IsSpace(r) {
			if !prevSpace && 0 < len(out) {
				out = append(out, ' ')
				prevSpace = true
			}
		} else {
			out = append(out, b[i:i+n]...)
			prevSpace = false
		}
		i += n
	}
	return out
}

func toLowerCopy(b []byte) []byte {
	return parse.ToLower(append(make([]byte, 0, len(b)), b...))
}
