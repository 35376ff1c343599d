// Package minify provides a ready-made registry with the HTML, CSS and JS
// minifiers wired up, plus string helpers for one-off minification.
package minify

import (
	"regexp"

	"github.com/WilliamThogersen/htmlmin"
	"github.com/WilliamThogersen/htmlmin/css"
	"github.com/WilliamThogersen/htmlmin/html"
	"github.com/WilliamThogersen/htmlmin/js"
)

// Default holds minifiers for text/html, text/css and the JS mediatypes.
var Default *minify.M

func init() {
	Default = minify.New()
	Default.AddFunc("text/css", css.Minify)
	Default.AddFunc("text/html", html.Minify)
	Default.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
}

// HTML minifies an HTML string with all optimizations enabled.
func HTML(s string) (string, error) {
	return Default.String("text/html", s)
}

// CSS minifies a CSS string.
func CSS(s string) (string, error) {
	return Default.String("text/css", s)
}

// JS minifies a JavaScript string.
func JS(s string) (string, error) {
	return Default.String("application/javascript", s)
}
