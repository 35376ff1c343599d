package main

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/djherbis/atime"
	humanize "github.com/dustin/go-humanize"
	"github.com/matryer/try"
	"github.com/tdewolff/argp"

	minify "github.com/WilliamThogersen/htmlmin"
	"github.com/WilliamThogersen/htmlmin/css"
	"github.com/WilliamThogersen/htmlmin/html"
	"github.com/WilliamThogersen/htmlmin/js"
)

// Version is the current htmlmin version.
var Version = "built from source"

var extMap = map[string]string{
	"css":  "text/css",
	"htm":  "text/html",
	"html": "text/html",
	"js":   "application/javascript",
	"mjs":  "application/javascript",
}

var (
	m                  *minify.M
	hidden             bool
	list               bool
	recursive          bool
	quiet              bool
	verbose            int
	version            bool
	watch              bool
	mimetype           string
	preserve           []string
	preserveMode       bool
	preserveOwnership  bool
	preserveTimestamps bool
)

// Task is a minify task from one source file to one destination.
type Task struct {
	root string
	src  string
	dst  string
}

// NewTask returns a new Task.
func NewTask(root, input, output string) (Task, error) {
	if len(output) != 0 && (output == "." || output[len(output)-1] == os.PathSeparator) {
		rel, err := filepath.Rel(root, input)
		if err != nil {
			return Task{}, err
		}
		output = filepath.Join(output, rel)
	}
	return Task{root, input, output}, nil
}

// Loggers.
var (
	Error   *log.Logger
	Warning *log.Logger
	Info    *log.Logger
)

func main() {
	// os.Exit doesn't execute pending defer calls, this is fixed by encapsulating run()
	os.Exit(run())
}

func run() int {
	var inputs []string
	var output string
	var conservative bool
	var keepComments bool
	var keepConditionalComments bool
	var keepWhitespace bool
	var keepEndTags bool
	var keepQuotes bool
	var keepDefaultAttrVals bool
	var keepEmptyAttrs bool
	var noCSS bool
	var noJS bool

	defaultPreserve := []string{"mode", "timestamps"}
	if supportsGetOwnership {
		defaultPreserve = []string{"mode", "ownership", "timestamps"}
	}

	f := argp.New("htmlmin")
	f.AddRest(&inputs, "inputs", "Input files or directories, leave blank to use stdin")
	f.AddOpt(&output, "o", "output", nil, "Output file or directory, leave blank to use stdout")
	f.AddOpt(&mimetype, "", "type", nil, "Filetype (eg. html or text/html), optional when specifying inputs")
	f.AddOpt(&recursive, "r", "recursive", false, "Recursively minify directories")
	f.AddOpt(&hidden, "a", "all", false, "Minify all files, including hidden files and files in hidden directories")
	f.AddOpt(&list, "l", "list", false, "List all accepted filetypes")
	f.AddOpt(&quiet, "q", "quiet", false, "Quiet mode to suppress all output")
	f.AddOpt(argp.Count{I: &verbose}, "v", "verbose", nil, "Verbose mode, set twice for more verbosity")
	f.AddOpt(&watch, "w", "watch", false, "Watch files and minify upon changes")
	f.AddOpt(&preserve, "p", "preserve", defaultPreserve, "Preserve options (mode, ownership, timestamps, all)")
	f.AddOpt(&version, "", "version", false, "Version")

	f.AddOpt(&conservative, "", "conservative", false, "Start from the conservative preset instead of the default")
	f.AddOpt(&keepComments, "", "keep-comments", false, "Preserve all comments")
	f.AddOpt(&keepConditionalComments, "", "keep-conditional-comments", false, "Preserve all IE conditional comments")
	f.AddOpt(&keepWhitespace, "", "keep-whitespace", false, "Preserve whitespace in text nodes")
	f.AddOpt(&keepEndTags, "", "keep-end-tags", false, "Preserve all optional closing tags")
	f.AddOpt(&keepQuotes, "", "keep-quotes", false, "Preserve quotes around attribute values")
	f.AddOpt(&keepDefaultAttrVals, "", "keep-default-attrvals", false, "Preserve default attribute values")
	f.AddOpt(&keepEmptyAttrs, "", "keep-empty-attrs", false, "Preserve empty attributes")
	f.AddOpt(&noCSS, "", "no-css", false, "Do not minify embedded CSS")
	f.AddOpt(&noJS, "", "no-js", false, "Do not minify embedded JavaScript")
	f.Parse()

	if version {
		if !quiet {
			fmt.Printf("htmlmin %s\n", Version)
		}
		return 0
	}

	if list {
		if !quiet {
			var keys []string
			n := 0
			for k := range extMap {
				keys = append(keys, k)
				if n < len(k) {
					n = len(k)
				}
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Println(k + strings.Repeat(" ", n-len(k)+2) + extMap[k])
			}
		}
		return 0
	}

	htmlMinifier := html.Default()
	if conservative {
		htmlMinifier = html.Conservative()
	}
	if keepComments {
		htmlMinifier.RemoveComments = false
	}
	if keepConditionalComments {
		htmlMinifier.PreserveConditionalComments = true
	}
	if keepWhitespace {
		htmlMinifier.CollapseWhitespace = false
	}
	if keepEndTags {
		htmlMinifier.RemoveOptionalTags = false
	}
	if keepQuotes {
		htmlMinifier.RemoveAttributeQuotes = false
	}
	if keepDefaultAttrVals {
		htmlMinifier.RemoveDefaultAttributes = false
	}
	if keepEmptyAttrs {
		htmlMinifier.RemoveEmptyAttributes = false
	}
	if noCSS {
		htmlMinifier.MinifyCSS = false
	}
	if noJS {
		htmlMinifier.MinifyJS = false
	}

	m = minify.New()
	m.Add("text/html", htmlMinifier)
	m.AddFunc("text/css", css.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)

	if len(inputs) == 1 && inputs[0] == "-" {
		inputs = inputs[:0] // stdin
	}
	if output == "-" {
		output = "" // stdout
	}
	useStdin := len(inputs) == 0

	Error = log.New(io.Discard, "", 0)
	Warning = log.New(io.Discard, "", 0)
	Info = log.New(io.Discard, "", 0)
	if !quiet {
		Error = log.New(os.Stderr, "ERROR: ", 0)
		if 0 < verbose {
			Warning = log.New(os.Stderr, "WARNING: ", 0)
		}
		if 1 < verbose {
			Info = log.New(os.Stderr, "INFO: ", 0)
		}
	}

	// mimetype=="" means we infer the mimetype from file extensions
	if slash := strings.Index(mimetype, "/"); slash == -1 && 0 < len(mimetype) {
		var ok bool
		if mimetype, ok = extMap[mimetype]; !ok {
			Error.Println("unknown filetype", mimetype)
			return 1
		}
	}
	if mimetype == "" && useStdin {
		Error.Println("must specify --type for stdin")
		return 1
	}
	if (useStdin || output == "") && watch {
		Error.Println("--watch doesn't work with stdin and stdout, specify input and output")
		return 1
	}
	if useStdin && recursive {
		Error.Println("--recursive doesn't work with stdin, specify input")
		return 1
	}

	for _, option := range preserve {
		switch option {
		case "all":
			preserveMode = true
			preserveOwnership = true
			preserveTimestamps = true
		case "mode":
			preserveMode = true
		case "ownership":
			preserveOwnership = true
		case "timestamps":
			preserveTimestamps = true
		}
	}
	if preserveOwnership && !supportsGetOwnership {
		Warning.Println("preserve ownership not supported on platform")
	}

	for i, input := range inputs {
		inputs[i] = filepath.Clean(input)
		if input[len(input)-1] == os.PathSeparator {
			inputs[i] += string(os.PathSeparator)
		}
	}

	// an empty output means stdout
	dirDst := false
	if output != "" {
		dirDst = IsDir(output)
		if !dirDst && 1 < len(inputs) {
			Error.Printf("stat %v: no such file or directory\n", output)
			return 1
		}
		if dirDst && output[len(output)-1] != os.PathSeparator {
			output += string(os.PathSeparator)
		}
	}
	if 1 < len(inputs) && output == "" {
		Error.Println("must specify --output for multiple inputs")
		return 1
	}

	tasks, roots, err := createTasks(inputs, output)
	if err != nil {
		Error.Println(err)
		return 1
	}

	fails := 0
	if useStdin {
		t, _ := NewTask("", "", output)
		if !minifyTask(t) {
			fails++
		}
	} else {
		for _, t := range tasks {
			if !minifyTask(t) {
				fails++
			}
		}
	}

	if watch {
		watcher, err := NewWatcher(recursive)
		if err != nil {
			Error.Println(err)
			return 1
		}
		defer watcher.Close()

		changes := watcher.Run()
		for _, input := range inputs {
			if err := watcher.AddPath(input); err != nil {
				Error.Println(err)
			}
		}

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)

		for changes != nil {
			select {
			case <-c:
				signal.Stop(c)
				changes = nil
			case file, ok := <-changes:
				if !ok {
					changes = nil
					break
				}
				file = filepath.Clean(file)

				// find longest common path among roots
				root := ""
				for _, path := range roots {
					pathRel, err1 := filepath.Rel(path, file)
					rootRel, err2 := filepath.Rel(root, file)
					if err1 == nil && (err2 != nil || len(rootRel) > len(pathRel)) {
						root = path
					}
				}

				t, err := NewTask(root, file, output)
				if err != nil {
					Error.Println(err)
					return 1
				}
				if !minifyTask(t) {
					fails++
				}
			}
		}
	}

	if 0 < fails {
		return 1
	}
	return 0
}

func fileMatches(filename string) bool {
	ext := filepath.Ext(filename)
	if 0 < len(ext) {
		ext = ext[1:]
	}
	if _, ok := extMap[ext]; !ok {
		return false
	}
	return true
}

func createTasks(inputs []string, output string) ([]Task, []string, error) {
	var tasks []Task
	var roots []string
	for _, input := range inputs {
		root := filepath.Dir(input)
		info, err := os.Lstat(input)
		if err != nil {
			return nil, nil, err
		}

		if info.Mode().IsRegular() {
			task, err := NewTask(root, input, output)
			if err != nil {
				return nil, nil, err
			}
			tasks = append(tasks, task)
		} else if info.Mode().IsDir() {
			if !recursive {
				Warning.Println("--recursive not specified, omitting directory", input)
				continue
			}
			err := filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.Name() == "" || !hidden && d.Name()[0] == '.' {
					if d.IsDir() {
						return fs.SkipDir
					}
					return nil
				}
				if d.Type().IsRegular() && fileMatches(path) {
					task, err := NewTask(input, path, output)
					if err != nil {
						return err
					}
					tasks = append(tasks, task)
				}
				return nil
			})
			if err != nil {
				return nil, nil, err
			}
			roots = append(roots, input)
		} else {
			return nil, nil, fmt.Errorf("not a file or directory %s", input)
		}
	}
	return tasks, roots, nil
}

func minifyTask(t Task) bool {
	fileMimetype := mimetype
	if mimetype == "" {
		ext := filepath.Ext(t.src)
		if 0 < len(ext) {
			ext = ext[1:]
		}
		var ok bool
		if fileMimetype, ok = extMap[ext]; !ok {
			Warning.Println("cannot infer mimetype from extension in", t.src, ", set --type explicitly")
			return false
		}
	}

	srcName := t.src
	if srcName == "" {
		srcName = "stdin"
	}
	dstName := t.dst
	if dstName == "" {
		dstName = "stdout"
	} else if sameFile, _ := SameFile(t.src, t.dst); sameFile {
		// rename the original when overwriting in place
		bak := t.src + ".bak"
		err := try.Do(func(attempt int) (bool, error) {
			ferr := os.Rename(t.dst, bak)
			return attempt < 5, ferr
		})
		if err != nil {
			Error.Println(err)
			return false
		}
		t.src = bak
	}

	fr, err := openInputFile(t.src)
	if err != nil {
		Error.Println(err)
		return false
	}
	fw, err := openOutputFile(t.dst)
	if err != nil {
		Error.Println(err)
		fr.Close()
		return false
	}

	b, err := io.ReadAll(fr)
	fr.Close()
	if err != nil {
		fw.Close()
		Error.Println("cannot minify "+srcName+":", err)
		return false
	}

	success := true
	startTime := time.Now()
	w := bytes.NewBuffer(make([]byte, 0, len(b)))
	if err = m.Minify(fileMimetype, w, bytes.NewReader(b)); err != nil {
		w = bytes.NewBuffer(b) // copy original
		Error.Println("cannot minify "+srcName+":", err)
		success = false
	}

	rLen, wLen := len(b), w.Len()
	_, err = io.Copy(fw, w)
	fw.Close()
	if err != nil {
		Error.Println(err)
		return false
	}

	if !quiet {
		dur := time.Since(startTime)
		speed := "Inf MB"
		if 0 < dur {
			speed = humanize.Bytes(uint64(float64(rLen) / dur.Seconds()))
		}
		ratio := 1.0
		if 0 < rLen {
			ratio = float64(wLen) / float64(rLen)
		}

		stats := fmt.Sprintf("(%9v, %6v, %6v, %5.1f%%, %6v/s)", dur, humanize.Bytes(uint64(rLen)), humanize.Bytes(uint64(wLen)), ratio*100, speed)
		if srcName != dstName {
			fmt.Println(stats, "-", srcName, "to", dstName)
		} else {
			fmt.Println(stats, "-", srcName)
		}
	}

	// remove the original that was renamed, when overwriting files
	if t.src == t.dst+".bak" {
		if err = os.Remove(t.src); err != nil {
			Error.Println(err)
			return false
		}
		t.src = t.dst
	}
	preserveAttributes(t.src, t.dst)
	return success
}

func preserveAttributes(src, dst string) {
	if src == "" || dst == "" || src == dst {
		return
	}
	srcInfo, err := os.Stat(src)
	if err != nil {
		Warning.Println(err)
		return
	}

	if preserveMode {
		if err = os.Chmod(dst, srcInfo.Mode().Perm()); err != nil {
			Warning.Println(err)
		}
	}
	if preserveOwnership {
		if uid, gid, ok := getOwnership(srcInfo); ok {
			if err = os.Chown(dst, uid, gid); err != nil {
				Warning.Println(err)
			}
		}
	}
	if preserveTimestamps {
		if err = os.Chtimes(dst, atime.Get(srcInfo), srcInfo.ModTime()); err != nil {
			Warning.Println(err)
		}
	}
}
