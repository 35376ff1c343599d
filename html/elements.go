package html

// Element and attribute classification tables. These are initialized once and
// never mutated, so lookups are safe for concurrent minification calls.

// voidElements have no closing tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// optionalCloseElements may have their closing tag omitted.
var optionalCloseElements = map[string]bool{
	"p":        true,
	"dt":       true,
	"dd":       true,
	"li":       true,
	"option":   true,
	"thead":    true,
	"th":       true,
	"tbody":    true,
	"tr":       true,
	"td":       true,
	"tfoot":    true,
	"colgroup": true,
}

// booleanAttributes convey true by mere presence, their value is redundant.
var booleanAttributes = map[string]bool{
	"allowfullscreen": true,
	"async":           true,
	"autofocus":       true,
	"autoplay":        true,
	"checked":         true,
	"controls":        true,
	"default":         true,
	"defer":           true,
	"disabled":        true,
	"formnovalidate":  true,
	"hidden":          true,
	"inert":           true,
	"ismap":           true,
	"itemscope":       true,
	"loop":            true,
	"multiple":        true,
	"muted":           true,
	"nomodule":        true,
	"novalidate":      true,
	"open":            true,
	"playsinline":     true,
	"readonly":        true,
	"required":        true,
	"reversed":        true,
	"selected":        true,
	"typemustmatch":   true,
}

// emptyRemovableAttributes are safe to drop entirely when their value is empty.
var emptyRemovableAttributes = map[string]bool{
	"id":          true,
	"class":       true,
	"style":       true,
	"title":       true,
	"action":      true,
	"lang":        true,
	"dir":         true,
	"onfocus":     true,
	"onblur":      true,
	"onchange":    true,
	"onclick":     true,
	"ondblclick":  true,
	"onmousedown": true,
	"onmouseup":   true,
	"onmouseover": true,
	"onmousemove": true,
	"onmouseout":  true,
	"onkeypress":  true,
	"onkeydown":   true,
	"onkeyup":     true,
	"target":      true,
}

// isDefaultAttrVal returns true for (element, attribute, value) triples whose
// value is the HTML default and may be removed.
func isDefaultAttrVal(tag, key, val []byte) bool {
	switch string(tag) {
	case "script":
		return string(key) == "type" && string(val) == "text/javascript"
	case "style":
		return string(key) == "type" && string(val) == "text/css" ||
			string(key) == "media" && string(val) == "all"
	case "form":
		return string(key) == "method" && string(val) == "get" ||
			string(key) == "autocomplete" && string(val) == "on" ||
			string(key) == "enctype" && string(val) == "application/x-www-form-urlencoded"
	case "input":
		return string(key) == "type" && string(val) == "text"
	case "button":
		return string(key) == "type" && string(val) == "submit"
	}
	return false
}

// unquotedAttrBytes holds the bytes that may appear in an unquoted attribute
// value. Any other byte, including all non-ASCII bytes, forces quoting.
var unquotedAttrBytes [256]bool

func init() {
	for c := '0'; c <= '9'; c++ {
		unquotedAttrBytes[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		unquotedAttrBytes[c] = true
	}
	for c := 'a'; c <= 'z'; c++ {
		unquotedAttrBytes[c] = true
	}
	for _, c := range []byte("-_.:/#@%!*~") {
		unquotedAttrBytes[c] = true
	}
}

// isUnquotedAttrVal returns true when the value needs no surrounding quotes.
// An empty value always gets quotes.
func isUnquotedAttrVal(v []byte) bool {
	if len(v) == 0 {
		return false
	}
	for _, c := range v {
		if !unquotedAttrBytes[c] {
			return false
		}
	}
	return true
}
