package html

import "bytes"

var (
	commentStartBytes = []byte("--")
	commentEndBytes   = []byte("-->")
	doctypeBytes      = []byte("DOCTYPE")
	cdataStartBytes   = []byte("[CDATA[")
	cdataEndBytes     = []byte("]]>")
)

// Tokenizer is a lazy HTML tokenizer over an input buffer. The returned token
// data always slices the input buffer, the tokenizer never copies. It never
// fails either: malformed markup degrades to text or pass-through tokens, and
// the cursor only moves forward so tokenization is linear in the input size.
type Tokenizer struct {
	b     []byte
	pos   int
	inTag bool
}

// NewTokenizer returns a new Tokenizer for the given input buffer. The buffer
// must not be modified for the lifetime of the tokenizer.
func NewTokenizer(b []byte) *Tokenizer {
	return &Tokenizer{b: b}
}

// Next returns the next token type and its data, or ErrorToken when the input
// has been exhausted. Whitespace preceding any token is skipped.
func (z *Tokenizer) Next() (TokenType, []byte) {
	z.skipWhitespace()
	if z.pos >= len(z.b) {
		return ErrorToken, nil
	}

	if z.inTag {
		if z.b[z.pos] == '>' {
			z.pos++
			z.inTag = false
			return StartTagCloseToken, nil
		}
		if z.pos+1 < len(z.b) && z.b[z.pos] == '/' && z.b[z.pos+1] == '>' {
			z.pos += 2
			z.inTag = false
			return StartTagVoidToken, nil
		}
		if attr := z.consumeAttribute(); attr != nil {
			return AttributeToken, attr
		}
		// no attribute could be consumed, drop out of tag mode
		z.inTag = false
	}

	if z.b[z.pos] == '<' {
		return z.consumeTag()
	}
	return z.consumeText()
}

func (z *Tokenizer) consumeTag() (TokenType, []byte) {
	z.pos++ // <
	if z.pos >= len(z.b) {
		return ErrorToken, nil
	}

	switch z.b[z.pos] {
	case '!':
		return z.consumeSpecialTag()
	case '/':
		z.pos++
		name := z.consumeUntilByte('>')
		if z.pos < len(z.b) && z.b[z.pos] == '>' {
			z.pos++
		}
		return EndTagToken, name
	default:
		name := z.consumeTagName()
		z.inTag = true
		return StartTagToken, name
	}
}

// consumeSpecialTag handles <!-- -->, <!DOCTYPE >, <![CDATA[ ]]> and any
// other <!...> construct, which is passed through as a comment-like token
// spanning from <! up to and including >.
func (z *Tokenizer) consumeSpecialTag() (TokenType, []byte) {
	z.pos++ // !
	if z.pos+2 < len(z.b) && bytes.Equal(z.b[z.pos:z.pos+2], commentStartBytes) {
		z.pos += 2
		return CommentToken, z.consumeUntilBytes(commentEndBytes)
	} else if z.pos+7 < len(z.b) && bytes.Equal(z.b[z.pos:z.pos+7], doctypeBytes) {
		start := z.pos - 2
		z.consumeUntilByte('>')
		if z.pos < len(z.b) && z.b[z.pos] == '>' {
			z.pos++
		}
		return DoctypeToken, z.b[start:z.pos]
	} else if z.pos+7 < len(z.b) && bytes.Equal(z.b[z.pos:z.pos+7], cdataStartBytes) {
		z.pos += 7
		return CDATAToken, z.consumeUntilBytes(cdataEndBytes)
	}
	start := z.pos - 2
	z.consumeUntilByte('>')
	if z.pos < len(z.b) && z.b[z.pos] == '>' {
		z.pos++
	}
	return CommentToken, z.b[start:z.pos]
}

func (z *Tokenizer) consumeText() (TokenType, []byte) {
	start := z.pos
	if i := bytes.IndexByte(z.b[z.pos:], '<'); i != -1 {
		z.pos += i
	} else {
		z.pos = len(z.b)
	}
	if z.pos > start {
		return TextToken, z.b[start:z.pos]
	}
	return ErrorToken, nil
}

// consumeAttribute consumes one name or name=value fragment, including any
// quotes around the value. It returns nil when no attribute starts here.
func (z *Tokenizer) consumeAttribute() []byte {
	z.skipWhitespace()
	if z.pos >= len(z.b) || z.b[z.pos] == '>' {
		return nil
	}

	start := z.pos
	if z.consumeAttributeName() {
		z.skipWhitespace()
		if z.pos < len(z.b) && (z.b[z.pos] == '"' || z.b[z.pos] == '\'') {
			z.consumeQuotedValue(z.b[z.pos])
		} else {
			z.consumeUnquotedValue()
		}
	}
	if z.pos > start {
		return z.b[start:z.pos]
	}
	return nil
}

// consumeAttributeName returns true when the name is followed by an equals sign.
func (z *Tokenizer) consumeAttributeName() bool {
	for z.pos < len(z.b) {
		switch z.b[z.pos] {
		case '=':
			z.pos++
			return true
		case ' ', '\t', '\n', '\r', '>':
			return false
		}
		z.pos++
	}
	return false
}

func (z *Tokenizer) consumeQuotedValue(quote byte) {
	z.pos++ // opening quote
	for z.pos < len(z.b) {
		if z.b[z.pos] == quote {
			z.pos++
			break
		}
		z.pos++
	}
}

func (z *Tokenizer) consumeUnquotedValue() {
	for z.pos < len(z.b) {
		switch z.b[z.pos] {
		case ' ', '\t', '\n', '\r', '>':
			return
		}
		z.pos++
	}
}

func (z *Tokenizer) consumeTagName() []byte {
	start := z.pos
	for z.pos < len(z.b) {
		switch z.b[z.pos] {
		case '>', '/', ' ', '\t', '\n', '\r':
			return z.b[start:z.pos]
		}
		z.pos++
	}
	return z.b[start:z.pos]
}

func (z *Tokenizer) consumeUntilByte(c byte) []byte {
	start := z.pos
	if i := bytes.IndexByte(z.b[z.pos:], c); i != -1 {
		z.pos += i
	} else {
		z.pos = len(z.b)
	}
	return z.b[start:z.pos]
}

func (z *Tokenizer) consumeUntilBytes(delim []byte) []byte {
	start := z.pos
	if i := bytes.Index(z.b[z.pos:], delim); i != -1 {
		z.pos += i + len(delim)
		return z.b[start : z.pos-len(delim)]
	}
	z.pos = len(z.b)
	return z.b[start:]
}

func (z *Tokenizer) skipWhitespace() {
	for z.pos < len(z.b) {
		switch z.b[z.pos] {
		case ' ', '\t', '\n', '\r':
			z.pos++
		default:
			return
		}
	}
}
