// Package minify holds a registry of mediatype minifiers and the glue to run
// them over readers and writers. The minification algorithms themselves live
// in the html, css and js subpackages.
package minify

import (
	"errors"
	"io"
	"regexp"
	"sync"

	"github.com/tdewolff/parse/v2/buffer"
)

// ErrNotExist is returned when no minifier exists for a given mediatype.
var ErrNotExist = errors.New("minifier does not exist for mediatype")

////////////////////////////////////////////////////////////////

// MinifyFunc is the function interface for minifiers.
// The given params must not be mutated.
type MinifyFunc func(m *M, w io.Writer, r io.Reader, params map[string]string) error

// Minifier is the interface for minifiers.
type Minifier interface {
	Minify(m *M, w io.Writer, r io.Reader, params map[string]string) error
}

type minifyFunc struct {
	minify MinifyFunc
}

func (f minifyFunc) Minify(m *M, w io.Writer, r io.Reader, params map[string]string) error {
	return f.minify(m, w, r, params)
}

type patternMinifier struct {
	pattern *regexp.Regexp
	Minifier
}

////////////////////////////////////////////////////////////////

// M maps mediatypes to minifiers.
type M struct {
	literal map[string]Minifier
	pattern []patternMinifier
}

// New returns a new M.
func New() *M {
	return &M{
		literal: map[string]Minifier{},
	}
}

// Add adds a minifier to the mediatype => minifier map (unsafe for concurrent use).
func (m *M) Add(mediatype string, minifier Minifier) {
	m.literal[mediatype] = minifier
}

// AddFunc adds a minify function to the mediatype => minifier map (unsafe for concurrent use).
func (m *M) AddFunc(mediatype string, minifier MinifyFunc) {
	m.literal[mediatype] = minifyFunc{minifier}
}

// AddRegexp adds a minifier for all mediatypes that match the pattern (unsafe for concurrent use).
func (m *M) AddRegexp(pattern *regexp.Regexp, minifier Minifier) {
	m.pattern = append(m.pattern, patternMinifier{pattern, minifier})
}

// AddFuncRegexp adds a minify function for all mediatypes that match the pattern (unsafe for concurrent use).
func (m *M) AddFuncRegexp(pattern *regexp.Regexp, minifier MinifyFunc) {
	m.pattern = append(m.pattern, patternMinifier{pattern, minifyFunc{minifier}})
}

// Match returns the minifier that would be invoked for the given mediatype,
// or nil when none exists.
func (m *M) Match(mediatype string) Minifier {
	if minifier, ok := m.literal[mediatype]; ok {
		return minifier
	}
	for _, minifier := range m.pattern {
		if minifier.pattern.MatchString(mediatype) {
			return minifier.Minifier
		}
	}
	return nil
}

// Minify minifies the content of a reader by a mediatype and writes it to a writer.
// It returns ErrNotExist when no minifier exists for the mediatype.
func (m *M) Minify(mediatype string, w io.Writer, r io.Reader) error {
	if minifier := m.Match(mediatype); minifier != nil {
		return minifier.Minify(m, w, r, nil)
	}
	return ErrNotExist
}

// Bytes minifies an array of bytes. When an error occurs it returns the
// original array and the error.
func (m *M) Bytes(mediatype string, v []byte) ([]byte, error) {
	out := buffer.NewWriter(make([]byte, 0, len(v)))
	if err := m.Minify(mediatype, out, buffer.NewReader(v)); err != nil {
		return v, err
	}
	return out.Bytes(), nil
}

// String minifies a string. When an error occurs it returns the original
// string and the error.
func (m *M) String(mediatype string, v string) (string, error) {
	out := buffer.NewWriter(make([]byte, 0, len(v)))
	if err := m.Minify(mediatype, out, buffer.NewReader([]byte(v))); err != nil {
		return v, err
	}
	return string(out.Bytes()), nil
}

// Reader wraps a reader and minifies the stream.
// Errors from the minifier are returned by the reader.
func (m *M) Reader(mediatype string, r io.Reader) io.Reader {
	pr, pw := io.Pipe()
	go func() {
		if err := m.Minify(mediatype, pw, r); err != nil {
			pw.CloseWithError(err)
		} else {
			pw.Close()
		}
	}()
	return pr
}

// minifyWriter makes sure that errors from the minifier are passed down
// through Close (can be blocking).
type minifyWriter struct {
	pw  *io.PipeWriter
	wg  sync.WaitGroup
	err error
}

func (w *minifyWriter) Write(b []byte) (int, error) {
	return w.pw.Write(b)
}

// Close must be called when writing has finished. It returns the error from the minifier.
func (w *minifyWriter) Close() error {
	w.pw.Close()
	w.wg.Wait()
	return w.err
}

// Writer wraps a writer and minifies the stream.
// Errors from the minifier are returned by Close on the writer.
// The writer must be closed explicitly.
func (m *M) Writer(mediatype string, w io.Writer) io.WriteCloser {
	pr, pw := io.Pipe()
	mw := &minifyWriter{pw, sync.WaitGroup{}, nil}
	mw.wg.Add(1)
	go func() {
		defer mw.wg.Done()
		if err := m.Minify(mediatype, w, pr); err != nil {
			mw.err = err
			pr.CloseWithError(err)
		}
	}()
	return mw
}
