package shader

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var ppIncludeRe = regexp.MustCompile(`(?im)^#pragma\s+use\s+"([^"]+)"$`)

type Source interface {
	Contents() ([]byte, error)
}

type SourceBuf string

func (s SourceBuf) Contents() ([]byte, error) {
	return []byte(s), nil
}

type SourceFile struct {
	Filename string
}

func (s SourceFile) Contents() ([]byte, error) {
	return os.ReadFile(s.Filename)
}

// SourceFiles converts a list of files into sources, keeping the order.
func SourceFiles(files ...SourceFile) []Source {
	sources := make([]Source, len(files))
	for i, f := range files {
		sources[i] = f
	}
	return sources
}

// sourceName returns a human readable name used in diagnostics.
func sourceName(s Source, index int) string {
	if f, ok := s.(SourceFile); ok {
		return f.Filename
	}
	return fmt.Sprintf("<source %d>", index)
}

// Includes recursively resolves the files included with `#pragma use "..."`.
//
// Included files are listed before the files including them and the argument
// files are part of the returned list. Each file is listed once, include
// cycles are cut at the first repetition.
func Includes(filenames ...string) ([]SourceFile, error) {
	return processRecursive(filenames, nil, []SourceFile{})
}

// processRecursive appends the files and their includes to sources. The
// ancestors are the files currently being expanded.
func processRecursive(filenames []string, ancestors, sources []SourceFile) ([]SourceFile, error) {
	for _, filename := range filenames {
		absFilename, err := filepath.Abs(filename)
		if err != nil {
			return nil, err
		}
		currentFile := SourceFile{Filename: absFilename}
		if containsFile(sources, currentFile) || containsFile(ancestors, currentFile) {
			continue
		}
		shaderSource, err := currentFile.Contents()
		if err != nil {
			return nil, err
		}

		includeMatches := ppIncludeRe.FindAllSubmatch(shaderSource, -1)
		includes := make([]string, 0, len(includeMatches))
		for _, submatch := range includeMatches {
			includedFile := string(submatch[1])
			if !filepath.IsAbs(includedFile) {
				includedFile = filepath.Join(filepath.Dir(absFilename), includedFile)
			} else {
				includedFile = filepath.Clean(includedFile)
			}
			includes = append(includes, includedFile)
		}

		stack := append(append([]SourceFile{}, ancestors...), currentFile)
		sources, err = processRecursive(includes, stack, sources)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", absFilename, err)
		}
		sources = append(sources, currentFile)
	}
	return sources, nil
}

func containsFile(set []SourceFile, f SourceFile) bool {
	for _, inc := range set {
		if inc.Filename == f.Filename {
			return true
		}
	}
	return false
}
