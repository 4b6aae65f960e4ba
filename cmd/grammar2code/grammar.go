package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fpagnozzi/grammar2code/document"
	"github.com/fpagnozzi/grammar2code/normalize"
)

// loadGrammar parses the grammar document at path, applies the optional
// --overwrite document, and runs it through the full normalization
// pipeline. It returns the normalized document and the grammar's own
// directory, which both generation modes resolve copy/include paths
// against.
func loadGrammar(path, overwritePath string) (*document.Document, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("cannot open grammar file %s: %w", path, err)
	}
	defer f.Close()

	doc, err := document.Parse(f)
	if err != nil {
		return nil, "", err
	}

	var overwrite *document.Document
	if overwritePath != "" {
		of, err := os.Open(overwritePath)
		if err != nil {
			return nil, "", fmt.Errorf("cannot open overwrite file %s: %w", overwritePath, err)
		}
		defer of.Close()
		overwrite, err = document.Parse(of)
		if err != nil {
			return nil, "", err
		}
	}

	grammarDir := filepath.Dir(path)
	if err := normalize.Run(doc, overwrite, grammarDir, log); err != nil {
		return nil, "", err
	}
	return doc, grammarDir, nil
}
