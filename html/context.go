package html

import (
	"bytes"

	"github.com/tdewolff/parse/v2"
)

var (
	preBytes      = []byte("pre")
	codeBytes     = []byte("code")
	textareaBytes = []byte("textarea")
	scriptBytes   = []byte("script")
	styleBytes    = []byte("style")
	classBytes    = []byte("class")
)

// minifyContext tracks the element the token stream is currently inside of.
// The flags mirror the most recently opened element only: opening any element
// rewrites all three.
type minifyContext struct {
	inRawText bool // pre, code or textarea
	inScript  bool
	inStyle   bool
	tag       []byte // lowercased name of the most recently opened element
}

func (c *minifyContext) openTag(name []byte) {
	c.tag = append(c.tag[:0], name...)
	parse.ToLower(c.tag)

	c.inRawText = bytes.Equal(c.tag, preBytes) || bytes.Equal(c.tag, codeBytes) || bytes.Equal(c.tag, textareaBytes)
	c.inScript = bytes.Equal(c.tag, scriptBytes)
	c.inStyle = bytes.Equal(c.tag, styleBytes)
}

// closeTag clears a flag only when the closing name matches its governing
// element set, compared case-insensitively.
func (c *minifyContext) closeTag(name []byte) {
	if parse.EqualFold(name, preBytes) || parse.EqualFold(name, codeBytes) || parse.EqualFold(name, textareaBytes) {
		c.inRawText = false
	}
	if parse.EqualFold(name, scriptBytes) {
		c.inScript = false
	}
	if parse.EqualFold(name, styleBytes) {
		c.inStyle = false
	}
}
