package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tdewolff/test"
)

func TestNewTask(t *testing.T) {
	task, err := NewTask("dir", filepath.Join("dir", "a.html"), "out.html")
	test.Error(t, err)
	test.String(t, task.src, filepath.Join("dir", "a.html"))
	test.String(t, task.dst, "out.html")

	task, err = NewTask("dir", filepath.Join("dir", "a.html"), "out"+string(os.PathSeparator))
	test.Error(t, err)
	test.String(t, task.dst, filepath.Join("out", "a.html"))

	task, err = NewTask("dir", filepath.Join("dir", "sub", "a.html"), ".")
	test.Error(t, err)
	test.String(t, task.dst, filepath.Join("sub", "a.html"))
}

func TestFileMatches(t *testing.T) {
	test.That(t, fileMatches("index.html"), "html files match")
	test.That(t, fileMatches("a.htm"), "htm files match")
	test.That(t, fileMatches("style.css"), "css files match")
	test.That(t, fileMatches("app.js"), "js files match")
	test.That(t, fileMatches("mod.mjs"), "mjs files match")
	test.That(t, !fileMatches("image.png"), "png files do not match")
	test.That(t, !fileMatches("Makefile"), "files without extension do not match")
}

func TestIsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.html")
	if err := os.WriteFile(file, []byte("<p>x</p>"), 0o644); err != nil {
		t.Fatal(err)
	}
	test.That(t, IsDir(dir), "temp dir is a directory")
	test.That(t, !IsDir(file), "file is not a directory")
	test.That(t, !IsDir(filepath.Join(dir, "missing")), "missing path is not a directory")
}
