package html

import "strconv"

// TokenType determines the type of token, eg. a start tag or a text node.
type TokenType uint32

// TokenType values.
const (
	ErrorToken TokenType = iota // extra token when the input has been exhausted
	DoctypeToken
	CommentToken
	CDATAToken
	StartTagToken      // <name
	AttributeToken     // name or name=value fragment inside a start tag
	StartTagCloseToken // >
	StartTagVoidToken  // />
	EndTagToken        // </name>
	TextToken
)

// String returns the string representation of a TokenType.
func (tt TokenType) String() string {
	switch tt {
	case ErrorToken:
		return "Error"
	case DoctypeToken:
		return "Doctype"
	case CommentToken:
		return "Comment"
	case CDATAToken:
		return "CDATA"
	case StartTagToken:
		return "StartTag"
	case AttributeToken:
		return "Attribute"
	case StartTagCloseToken:
		return "StartTagClose"
	case StartTagVoidToken:
		return "StartTagVoid"
	case EndTagToken:
		return "EndTag"
	case TextToken:
		return "Text"
	}
	return "Invalid(" + strconv.Itoa(int(tt)) + ")"
}
