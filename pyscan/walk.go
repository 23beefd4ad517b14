package pyscan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

var skippedDirs = map[string]bool{
	".git":          true,
	".hg":           true,
	".idea":         true,
	".mypy_cache":   true,
	".tox":          true,
	".venv":         true,
	".vscode":       true,
	"__pycache__":   true,
	"build":         true,
	"dist":          true,
	"node_modules":  true,
	"site-packages": true,
	"venv":          true,
}

// SkipDir reports whether a directory is never scanned or watched.
func SkipDir(name string) bool {
	return skippedDirs[name]
}

// CollectPythonFiles walks root and returns the absolute paths of every
// Python source file, sorted. Cache and VCS directories are skipped, and a
// .gitignore at root is honored when present.
func CollectPythonFiles(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	var ignore *gitignore.GitIgnore
	if matcher, err := gitignore.CompileIgnoreFile(filepath.Join(absRoot, ".gitignore")); err == nil {
		ignore = matcher
	} else if !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: unreadable .gitignore in %s: %v\n", absRoot, err)
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			return relErr
		}

		if d.IsDir() {
			if path != absRoot && (SkipDir(d.Name()) || isIgnored(ignore, rel)) {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), ".py") || isIgnored(ignore, rel) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

func isIgnored(ignore *gitignore.GitIgnore, rel string) bool {
	return ignore != nil && ignore.MatchesPath(rel)
}
