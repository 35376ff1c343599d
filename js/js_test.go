package js

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJS(t *testing.T) {
	jsTests := []struct {
		js       string
		expected string
	}{
		{"", ""},
		{"var x = 5;", "var x=5;"},
		{"var x = 5;  var y = 6;", "var x=5;var y=6;"},
		{"function foo() {  return 42;  }", "function foo(){return 42;}"},
		{"// line comment\nvar x = 1;", "var x=1;"},
		{"/* block\ncomment */ var x = 1;", "var x=1;"},
		{"var s = 'keep  spaces';", "var s='keep  spaces';"},
		{`var s = "a \" b";`, `var s="a \" b";`},
		{"var s = `hello ${ name } world`;", "var s=`hello ${ name } world`;"},
		{"var s = `a ${ `b ${ c } d` } e`;", "var s=`a ${ `b ${ c } d` } e`;"},
		{"if (a) {\n  b();\n}", "if(a){b();}"},
		{"a  b", "a b"},
		{"typeof x", "typeof x"},
		{"let x = a\n+ b;", "let x=a+b;"},
	}
	for _, tt := range jsTests {
		t.Run(tt.js, func(t *testing.T) {
			assert.Equal(t, tt.expected, MinifyString(tt.js))
		})
	}
}

func TestJSRegex(t *testing.T) {
	jsTests := []struct {
		js       string
		expected string
	}{
		{"let pattern = /test/g;", "let pattern=/test/g;"},
		{"return /pattern/i;", "return/pattern/i;"},
		{"a.match(/ regex with spaces /);", "a.match(/ regex with spaces /);"},
		{"x = a / b;", "x=a/b;"},
		{"(a + b) / c", "(a+b)/c"},
		{"x = 10 / 2;", "x=10/2;"},
		{"arr[0] / 2", "arr[0]/2"},
		{"/^start/.test(s);", "/^start/.test(s);"},
		{"a = b ? /x/ : /y/;", "a=b?/x/:/y/;"},
		{"if (a) { /x/.test(b); }", "if(a){/x/.test(b);}"},
		{"s.split(/[a-z]\\/[0-9]/);", "s.split(/[a-z]\\/[0-9]/);"},
		{"s.replace(/a\\/b/, c);", "s.replace(/a\\/b/,c);"},
		{"case /x/.source: break;", "case/x/.source:break;"},
		{"throw /err/;", "throw/err/;"},
	}
	for _, tt := range jsTests {
		t.Run(tt.js, func(t *testing.T) {
			assert.Equal(t, tt.expected, MinifyString(tt.js))
		})
	}
}

func TestJSRegexContext(t *testing.T) {
	contextTests := []struct {
		out     string
		isRegex bool
	}{
		{"", true},
		{"x =", true},
		{"(", true},
		{"return", true},
		{"typeof", true},
		{"x", false},
		{")", false},
		{"]", false},
		{"returned", false}, // identifier ending in a keyword
		{"a +", true}, // space before the operator hides the value, stays regex
		{"1+", false}, // binary plus after a value
		{"a <<", true},
		{"a++", true}, // mistaken for a double operator on purpose, division stays local
	}
	for _, tt := range contextTests {
		t.Run(tt.out, func(t *testing.T) {
			assert.Equal(t, tt.isRegex, isRegexContext([]byte(tt.out)))
		})
	}
}

func TestJSStable(t *testing.T) {
	jsTests := []string{
		"let pattern = /test/g;",
		"function foo() {  return 42;  }",
		"var s = `hello ${ name } world`;",
	}
	for _, input := range jsTests {
		t.Run(input, func(t *testing.T) {
			once := MinifyString(input)
			assert.Equal(t, once, MinifyString(once))
		})
	}
}

func TestJSMinifyWriter(t *testing.T) {
	b := &bytes.Buffer{}
	err := Minify(nil, b, bytes.NewBufferString("var x = 1;"), nil)
	assert.Nil(t, err)
	assert.Equal(t, "var x=1;", b.String())
}

func BenchmarkJS(b *testing.B) {
	input := []byte("function add(a, b) {\n  // add two numbers\n  return a + b;\n}\nlet re = /[a-z]+/g;\nlet result = add(1, 2) / 3;\n")
	b.SetBytes(int64(len(input)))
	for i := 0; i < b.N; i++ {
		MinifyBytes(input)
	}
}
