package css

import (
	"bytes"
	"testing"

	"github.com/tdewolff/test"
)

func TestCSS(t *testing.T) {
	cssTests := []struct {
		css      string
		expected string
	}{
		{"", ""},
		{"body {  color: red;  margin: 0;  }", "body{color:red;margin:0}"},
		{"/* comment */ body { color: red; }", "body{color:red}"},
		{".a , .b { x: y; }", ".a,.b{x:y}"},
		{".a > .b { x: y; }", ".a>.b{x:y}"},
		{".a + .b { x: y; }", ".a+.b{x:y}"},
		{".a ~ .b { x: y; }", ".a~.b{x:y}"},
		{"a { margin: 0 auto; }", "a{margin:0 auto}"},
		{"a { font: 12px/1.5 sans-serif; }", "a{font:12px/1.5 sans-serif}"},
		{`a { content: "  keep  me  "; }`, `a{content:"  keep  me  "}`},
		{`a { content: "quote \" inside"; }`, `a{content:"quote \" inside"}`},
		{"a { content: 'single'; }", "a{content:'single'}"},
		{"@media screen and (max-width: 100px) { a { x: y; } }", "@media screen and (max-width:100px){a{x:y}}"},
		{"a { x: y; } /* trailing", "a{x:y}"},
		{"a { x: y", "a{x:y"},
		{"div\n{\ncolor : blue ;\n}", "div{color:blue}"},
		{"a{x:y;;}", "a{x:y}"},
		{"  \t a { x: y }  ", "a{x:y}"},
		{"a { background: url(image.png); }", "a{background:url(image.png)}"},
		{"sel { p: 1; } sel2 { p: 2; }", "sel{p:1}sel2{p:2}"},
	}
	for _, tt := range cssTests {
		t.Run(tt.css, func(t *testing.T) {
			test.String(t, MinifyString(tt.css), tt.expected)
		})
	}
}

func TestCSSInline(t *testing.T) {
	cssTests := []struct {
		css      string
		expected string
	}{
		{"color: red;  margin: 10px;  ", "color:red;margin:10px;"},
		{"color : red", "color:red"},
	}
	for _, tt := range cssTests {
		t.Run(tt.css, func(t *testing.T) {
			test.String(t, MinifyString(tt.css), tt.expected)
		})
	}
}

func TestCSSStable(t *testing.T) {
	cssTests := []string{
		"body {  color: red;  margin: 0;  }",
		"@media screen and (max-width: 100px) { a { x: y; } }",
		`a { content: "  keep  me  "; }`,
	}
	for _, input := range cssTests {
		t.Run(input, func(t *testing.T) {
			once := MinifyString(input)
			test.String(t, MinifyString(once), once)
		})
	}
}

func TestCSSMinifyWriter(t *testing.T) {
	b := &bytes.Buffer{}
	if err := Minify(nil, b, bytes.NewBufferString("a { x : y }"), nil); err != nil {
		t.Fatal(err)
	}
	test.String(t, b.String(), "a{x:y}")
}

func BenchmarkCSS(b *testing.B) {
	input := []byte("body {  color: red;  margin: 0 auto;  }\n.nav > li { display: inline-block; }\n/* comment */\n@media screen { a { color: blue; } }")
	b.SetBytes(int64(len(input)))
	for i := 0; i < b.N; i++ {
		MinifyBytes(input)
	}
}
