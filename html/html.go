// Package html minifies HTML5 following the WHATWG specification only as far
// as lexical structure goes: it removes redundant whitespace, comments,
// attribute quotes and values, and optional closing tags, and hands the
// contents of style and script elements to the css and js minifiers.
package html

import (
	"bytes"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/WilliamThogersen/htmlmin"
	"github.com/WilliamThogersen/htmlmin/css"
	"github.com/WilliamThogersen/htmlmin/js"
	"github.com/tdewolff/parse/v2"
)

// Minifier is an HTML minifier with a flat set of feature toggles. The zero
// value performs no optimizations at all; use Default or Conservative for the
// common presets. A Minifier is read-only during a call and may be shared by
// concurrent calls.
type Minifier struct {
	RemoveComments              bool
	CollapseWhitespace          bool
	RemoveOptionalTags          bool
	RemoveAttributeQuotes       bool
	CollapseBooleanAttributes   bool
	RemoveDefaultAttributes     bool
	RemoveEmptyAttributes       bool
	MinifyCSS                   bool
	MinifyJS                    bool
	PreserveConditionalComments bool
}

// Default returns a Minifier with all optimizations enabled and conditional
// comments not preserved.
func Default() *Minifier {
	return &Minifier{
		RemoveComments:            true,
		CollapseWhitespace:        true,
		RemoveOptionalTags:        true,
		RemoveAttributeQuotes:     true,
		CollapseBooleanAttributes: true,
		RemoveDefaultAttributes:   true,
		RemoveEmptyAttributes:     true,
		MinifyCSS:                 true,
		MinifyJS:                  true,
	}
}

// Conservative returns a Minifier that is safe on markup relying on defaults
// and quoting: it removes comments and collapses whitespace and boolean
// attributes, but keeps quotes, closing tags, default and empty attributes,
// and preserves IE conditional comments.
func Conservative() *Minifier {
	return &Minifier{
		RemoveComments:              true,
		CollapseWhitespace:          true,
		CollapseBooleanAttributes:   true,
		MinifyCSS:                   true,
		MinifyJS:                    true,
		PreserveConditionalComments: true,
	}
}

// Minify minifies HTML data with the default toggles, it reads from r and
// writes to w.
func Minify(m *minify.M, w io.Writer, r io.Reader, params map[string]string) error {
	return Default().Minify(m, w, r, params)
}

// Minify minifies HTML data, it reads from r and writes to w.
func (o *Minifier) Minify(_ *minify.M, w io.Writer, r io.Reader, _ map[string]string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	_, err = w.Write(o.MinifyBytes(b))
	return err
}

// MinifyString minifies an HTML string.
func (o *Minifier) MinifyString(s string) string {
	return string(o.MinifyBytes([]byte(s)))
}

// MinifyBytes minifies an HTML byte slice. It is total: any input yields an
// output, malformed markup passes through instead of failing. The input is
// not modified and must not change during the call.
func (o *Minifier) MinifyBytes(b []byte) []byte {
	dst := make([]byte, 0, len(b)*3/5) // minified HTML is typically 50-70% of the original
	z := NewTokenizer(b)
	var ctx minifyContext
	for {
		tt, data := z.Next()
		if tt == ErrorToken {
			break
		}
		dst = o.appendToken(dst, tt, data, &ctx)
	}
	if o.CollapseWhitespace {
		dst = cleanupSpacing(dst)
	}
	return dst
}

func (o *Minifier) appendToken(dst []byte, tt TokenType, data []byte, ctx *minifyContext) []byte {
	switch tt {
	case DoctypeToken:
		n := len(dst)
		dst = append(dst, data...)
		parse.ToLower(dst[n:])
	case CommentToken:
		if o.PreserveConditionalComments && isConditionalComment(data) || !o.RemoveComments {
			dst = append(dst, "<!--"...)
			dst = append(dst, data...)
			dst = append(dst, "-->"...)
		}
	case CDATAToken:
		dst = append(dst, "<![CDATA["...)
		dst = append(dst, data...)
		dst = append(dst, "]]>"...)
	case StartTagToken:
		ctx.openTag(data)
		dst = append(dst, '<')
		dst = append(dst, ctx.tag...)
	case AttributeToken:
		dst = o.appendAttribute(dst, data, ctx.tag)
	case StartTagCloseToken:
		dst = append(dst, '>')
	case StartTagVoidToken:
		if voidElements[string(ctx.tag)] {
			dst = append(dst, '>')
		} else {
			dst = append(dst, "/>"...)
		}
	case EndTagToken:
		name := toLowerCopy(data)
		if !o.RemoveOptionalTags || !optionalCloseElements[string(name)] {
			dst = append(dst, "</"...)
			dst = append(dst, name...)
			dst = append(dst, '>')
		}
		ctx.closeTag(data)
	case TextToken:
		dst = o.appendText(dst, data, ctx)
	}
	return dst
}

func (o *Minifier) appendText(dst, data []byte, ctx *minifyContext) []byte {
	if ctx.inStyle && o.MinifyCSS {
		return append(dst, css.MinifyBytes(data)...)
	}
	if ctx.inScript && o.MinifyJS {
		return append(dst, js.MinifyBytes(data)...)
	}
	if ctx.inRawText || !o.CollapseWhitespace {
		return append(dst, data...)
	}
	return appendCollapsedWhitespace(dst, data)
}

// appendCollapsedWhitespace reduces whitespace runs to single spaces while
// preserving all other content exactly.
func appendCollapsedWhitespace(dst, b []byte) []byte {
	prevSpace := false
	for i := 0; i < len(b); {
		r, n := utf8.DecodeRune(b[i:])
		if unicode.IsSpace(r) {
			if !prevSpace {
				dst = append(dst, ' ')
				prevSpace = true
			}
		} else {
			dst = append(dst, b[i:i+n]...)
			prevSpace = false
		}
		i += n
	}
	return dst
}

func isConditionalComment(comment []byte) bool {
	return bytes.HasPrefix(comment, []byte("[if ")) || bytes.HasPrefix(comment, []byte("[endif"))
}
