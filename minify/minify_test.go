package minify

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestDefault(t *testing.T) {
	test.That(t, Default.Match("text/html") != nil, "text/html must be registered")
	test.That(t, Default.Match("text/css") != nil, "text/css must be registered")
	test.That(t, Default.Match("application/javascript") != nil, "application/javascript must be registered")
	test.That(t, Default.Match("text/x-ecmascript") != nil, "text/x-ecmascript must be registered")
	test.That(t, Default.Match("image/png") == nil, "image/png must not be registered")
}

func TestHTML(t *testing.T) {
	s, err := HTML(`<div class="container">  <p>Hello</p>  </div>`)
	test.Error(t, err)
	test.String(t, s, "<div class=container><p>Hello</div>")
}

func TestCSS(t *testing.T) {
	s, err := CSS("a { color: blue; }")
	test.Error(t, err)
	test.String(t, s, "a{color:blue}")
}

func TestJS(t *testing.T) {
	s, err := JS("var x = 5;")
	test.Error(t, err)
	test.String(t, s, "var x=5;")
}
