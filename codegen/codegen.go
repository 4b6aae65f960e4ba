// Package codegen implements the code-materialization half of the system:
// consume a parameter assignment, drive the walker to select branches,
// buffer literal text per output file, reindent, and flush.
package codegen

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"github.com/fpagnozzi/grammar2code/document"
	"github.com/fpagnozzi/grammar2code/grerr"
	"github.com/fpagnozzi/grammar2code/walk"
)

// Emitter implements walk.Visitor over a destructively-consumed parameter
// assignment map: each categorical/recursive/range callback pops its
// entry, so anything left over after the walk is reported as unused.
type Emitter struct {
	Doc           *document.Document
	TargetDir     string
	Params        map[string]string
	DoNotReindent bool
	Log           *logrus.Logger

	code []string
	file *os.File
}

// Generate runs the full code-materialization pipeline: the two copy
// pre-passes, then the walk from every output-bearing derivation, then a
// warning for every unconsumed parameter.
func Generate(doc *document.Document, grammarDir, targetDir string, params map[string]string, doNotReindent bool, log *logrus.Logger) error {
	if log == nil {
		log = logrus.New()
	}
	if err := copySingleFiles(doc, grammarDir, targetDir, log); err != nil {
		return err
	}
	if err := copyFilesWithFilter(doc, grammarDir, targetDir, log); err != nil {
		return err
	}

	e := &Emitter{Doc: doc, TargetDir: targetDir, Params: params, DoNotReindent: doNotReindent, Log: log}
	w := &walk.Walker{Doc: doc, MaxDepth: math.MaxInt32, Visitor: e}
	if err := w.Walk(); err != nil {
		return err
	}
	if err := e.flush(); err != nil {
		return err
	}

	for name, value := range e.Params {
		log.Warnf("parameter %q = %q was not used during code generation", name, value)
	}
	return nil
}

func (e *Emitter) Call(doc *document.Document, node int, path string, depth int) error {
	return nil
}

func (e *Emitter) Categorical(doc *document.Document, node int, path string, depth int) (int, error) {
	if err := e.maybeOpenOutput(node); err != nil {
		return 0, err
	}
	return e.consumeChoice(path)
}

func (e *Emitter) Recursive(doc *document.Document, node int, path string, depth int) (int, error) {
	if err := e.maybeOpenOutput(node); err != nil {
		return 0, err
	}
	return e.consumeChoice(path)
}

func (e *Emitter) Range(doc *document.Document, node int, path string, depth int) error {
	key := displayKey(path)
	value, ok := e.Params[key]
	if !ok {
		return grerr.ErrNoParameterForPath.New(key)
	}
	delete(e.Params, key)
	e.code = append(e.code, value)
	return nil
}

func (e *Emitter) Copy(doc *document.Document, node int, path string, depth int) error {
	return nil
}

func (e *Emitter) CData(doc *document.Document, node int, path string, depth int) error {
	e.code = append(e.code, doc.Node(node).Text)
	return nil
}

func (e *Emitter) Plain(doc *document.Document, node int, path string, depth int) error {
	return e.maybeOpenOutput(node)
}

func (e *Emitter) consumeChoice(path string) (int, error) {
	key := displayKey(path)
	value, ok := e.Params[key]
	if !ok {
		return 0, grerr.ErrNoParameterForPath.New(key)
	}
	delete(e.Params, key)
	choice, err := cast.ToIntE(value)
	if err != nil {
		return 0, grerr.ErrBadParameterToken.New(value)
	}
	return choice, nil
}

// displayKey mirrors the dialects' rule_name display form by replacing
// ":" with "-" in the raw walker path; assignment keys arrive already in
// that form from the CLI's --name=value tokens.
func displayKey(path string) string {
	out := make([]byte, 0, len(path))
	for i := 0; i < len(path); i++ {
		if path[i] == ':' {
			out = append(out, '-')
		} else {
			out = append(out, path[i])
		}
	}
	return string(out)
}

func (e *Emitter) maybeOpenOutput(node int) error {
	out, ok := e.Doc.Node(node).Attr("output")
	if !ok || out == "" {
		return nil
	}
	return e.openOutput(out)
}

func (e *Emitter) openOutput(rel string) error {
	if err := e.flush(); err != nil {
		return err
	}
	full := filepath.Join(e.TargetDir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return grerr.ErrOutputFile.New(full, err.Error())
	}
	f, err := os.Create(full)
	if err != nil {
		return grerr.ErrOutputFile.New(full, err.Error())
	}
	e.Log.Infof("output file %s", full)
	e.file = f
	return nil
}

// flush reindents the buffered code and writes it to the currently open
// output file, then closes it. A no-op if no file is open.
func (e *Emitter) flush() error {
	if e.file == nil {
		return nil
	}
	defer func() {
		e.file.Close()
		e.file = nil
	}()
	if len(e.code) == 0 {
		return nil
	}
	joined := ""
	for _, c := range e.code {
		joined += c
	}
	e.code = nil
	text := Reindent(joined, e.DoNotReindent)
	_, err := io.WriteString(e.file, text)
	return err
}

// copySingleFiles handles every top-level derivation carrying both
// source and destination attributes: a verbatim single-file copy
// resolved relative to the grammar's own directory.
func copySingleFiles(doc *document.Document, grammarDir, targetDir string, log *logrus.Logger) error {
	for _, top := range doc.TopLevel() {
		n := doc.Node(top)
		src, hasSrc := n.Attr("source")
		dst, hasDst := n.Attr("destination")
		if !hasSrc || !hasDst {
			continue
		}
		srcPath := filepath.Join(grammarDir, src)
		dstPath := filepath.Join(targetDir, dst)
		if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
			return grerr.ErrOutputFile.New(filepath.Dir(dstPath), err.Error())
		}
		log.Infof("copying %s to %s", srcPath, dstPath)
		if err := copyFile(srcPath, dstPath); err != nil {
			return grerr.ErrCopySource.New(srcPath, err.Error())
		}
	}
	return nil
}

// copyFilesWithFilter handles every top-level derivation carrying
// source_dir, destination_dir and regex_filter: every regular file in the
// source directory whose name matches the filter is copied.
func copyFilesWithFilter(doc *document.Document, grammarDir, targetDir string, log *logrus.Logger) error {
	for _, top := range doc.TopLevel() {
		n := doc.Node(top)
		srcDir, hasSrc := n.Attr("source_dir")
		dstDir, hasDst := n.Attr("destination_dir")
		filterExpr, hasFilter := n.Attr("regex_filter")
		if !hasSrc || !hasDst || !hasFilter {
			continue
		}
		filter, err := regexp.Compile(filterExpr)
		if err != nil {
			return grerr.ErrCopySource.New(filterExpr, err.Error())
		}
		srcPath := filepath.Join(grammarDir, srcDir)
		dstPath := filepath.Join(targetDir, dstDir)
		if err := os.MkdirAll(dstPath, 0o755); err != nil {
			return grerr.ErrOutputFile.New(dstPath, err.Error())
		}
		entries, err := os.ReadDir(srcPath)
		if err != nil {
			return grerr.ErrCopySource.New(srcPath, err.Error())
		}
		for _, entry := range entries {
			if entry.IsDir() || !filter.MatchString(entry.Name()) {
				continue
			}
			cpSrc := filepath.Join(srcPath, entry.Name())
			cpDst := filepath.Join(dstPath, entry.Name())
			log.Infof("copying %s to %s", cpSrc, cpDst)
			if err := copyFile(cpSrc, cpDst); err != nil {
				return grerr.ErrCopySource.New(cpSrc, err.Error())
			}
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}
