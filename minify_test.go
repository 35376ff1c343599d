package minify

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errDummy = errors.New("dummy error")

var m *M

func init() {
	m = New()
	m.AddFunc("dummy/copy", func(m *M, w io.Writer, r io.Reader, _ map[string]string) error {
		io.Copy(w, r)
		return nil
	})
	m.AddFunc("dummy/nil", func(m *M, w io.Writer, r io.Reader, _ map[string]string) error {
		return nil
	})
	m.AddFunc("dummy/err", func(m *M, w io.Writer, r io.Reader, _ map[string]string) error {
		return errDummy
	})
	m.AddFuncRegexp(regexp.MustCompile("^type/.+$"), func(m *M, w io.Writer, r io.Reader, _ map[string]string) error {
		w.Write([]byte("type/*"))
		return nil
	})
}

func TestMinify(t *testing.T) {
	assert.Equal(t, ErrNotExist, m.Minify("?", nil, nil), "must return ErrNotExist when minifier doesn't exist")
	assert.Nil(t, m.Minify("dummy/nil", nil, nil), "must return nil for dummy/nil")
	assert.Equal(t, errDummy, m.Minify("dummy/err", nil, nil), "must return errDummy for dummy/err")

	b := []byte("test")
	out, err := m.Bytes("dummy/nil", b)
	assert.Nil(t, err, "must not return error for dummy/nil")
	assert.Equal(t, []byte{}, out, "dummy/nil must return empty byte slice")
	out, err = m.Bytes("?", b)
	assert.Equal(t, ErrNotExist, err, "must return ErrNotExist when minifier doesn't exist")
	assert.Equal(t, b, out, "must return input byte slice when minifier doesn't exist")

	s, err := m.String("dummy/copy", "test")
	assert.Nil(t, err, "must not return error for dummy/copy")
	assert.Equal(t, "test", s, "dummy/copy must return input string")
	s, err = m.String("?", "test")
	assert.Equal(t, ErrNotExist, err, "must return ErrNotExist when minifier doesn't exist")
	assert.Equal(t, "test", s, "must return input string when minifier doesn't exist")
}

func TestAdd(t *testing.T) {
	m := New()
	w := &bytes.Buffer{}
	r := bytes.NewBufferString("test")
	m.AddFunc("dummy/copy", func(m *M, w io.Writer, r io.Reader, _ map[string]string) error {
		io.Copy(w, r)
		return nil
	})
	m.AddFunc("dummy/err", func(m *M, w io.Writer, r io.Reader, _ map[string]string) error {
		return errDummy
	})
	assert.Nil(t, m.Minify("dummy/copy", w, r), "must not return error for dummy/copy")
	assert.Equal(t, "test", w.String(), "dummy/copy must copy input")

	assert.Equal(t, errDummy, m.Minify("dummy/err", nil, nil), "must return errDummy for dummy/err")
}

func TestMatch(t *testing.T) {
	assert.NotNil(t, m.Match("dummy/copy"), "must match literal mediatype")
	assert.NotNil(t, m.Match("type/sub"), "must match pattern mediatype")
	assert.Nil(t, m.Match("?"), "must not match unknown mediatype")
}

func TestWildcard(t *testing.T) {
	mimetypes := map[string]string{
		"type/sub":  "type/*",
		"type/*":    "type/*",
		"type/sub2": "type/*",
	}
	for mimetype, expected := range mimetypes {
		s, err := m.String(mimetype, "")
		assert.Nil(t, err, "must not return error for "+mimetype)
		assert.Equal(t, expected, s, "must return "+expected+" for "+mimetype)
	}
}

func TestReader(t *testing.T) {
	m := New()
	m.AddFunc("dummy/dummy", func(m *M, w io.Writer, r io.Reader, _ map[string]string) error {
		_, err := io.Copy(w, r)
		return err
	})
	m.AddFunc("dummy/err", func(m *M, w io.Writer, r io.Reader, _ map[string]string) error {
		return errDummy
	})

	w := &bytes.Buffer{}
	r := bytes.NewBufferString("test")
	mr := m.Reader("dummy/dummy", r)
	_, err := io.Copy(w, mr)
	assert.Nil(t, err, "must not return error for dummy/dummy")
	assert.Equal(t, "test", w.String(), "must copy input through reader")

	mr = m.Reader("dummy/err", r)
	_, err = io.Copy(w, mr)
	assert.Equal(t, errDummy, err, "must return errDummy for dummy/err")
}

func TestWriter(t *testing.T) {
	m := New()
	m.AddFunc("dummy/dummy", func(m *M, w io.Writer, r io.Reader, _ map[string]string) error {
		_, err := io.Copy(w, r)
		return err
	})
	m.AddFunc("dummy/err", func(m *M, w io.Writer, r io.Reader, _ map[string]string) error {
		return errDummy
	})

	w := &bytes.Buffer{}
	mw := m.Writer("dummy/dummy", w)
	_, err := mw.Write([]byte("test"))
	assert.Nil(t, err, "must not return error for dummy/dummy")
	assert.Nil(t, mw.Close(), "must not return error on close for dummy/dummy")
	assert.Equal(t, "test", w.String(), "must copy input through writer")

	w = &bytes.Buffer{}
	mw = m.Writer("dummy/err", w)
	mw.Write([]byte("test"))
	assert.Equal(t, errDummy, mw.Close(), "must return errDummy on close for dummy/err")
}
