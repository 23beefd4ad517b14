package recorder

import (
	"os"
	"path/filepath"
	"strings"
)

// PathFilter decides whether a source file lies under any of a fixed set of
// root directories. An empty root set accepts every path, which is how
// unfiltered recording is expressed.
type PathFilter struct {
	roots []string
}

// NewPathFilter canonicalizes the given roots and returns a filter over them.
func NewPathFilter(roots []string) (*PathFilter, error) {
	canonical := make([]string, 0, len(roots))
	for _, root := range roots {
		c, ok := canonicalize(root)
		if !ok {
			return nil, &os.PathError{Op: "resolve", Path: root, Err: os.ErrInvalid}
		}
		canonical = append(canonical, c)
	}
	return &PathFilter{roots: canonical}, nil
}

// InScope reports whether path is equal to or nested under any filter root.
// An unresolvable path is out of scope.
func (f *PathFilter) InScope(path string) bool {
	if len(f.roots) == 0 {
		return true
	}
	c, ok := canonicalize(path)
	if !ok {
		return false
	}
	for _, root := range f.roots {
		if c == root || strings.HasPrefix(c, withSeparator(root)) {
			return true
		}
	}
	return false
}

// canonicalize makes a path absolute and resolves symlinks when the path
// exists on disk. Paths that do not exist keep their lexical absolute form so
// that scoping works for files the host only knows by name.
func canonicalize(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, true
	}
	return abs, true
}

func withSeparator(root string) string {
	if strings.HasSuffix(root, string(filepath.Separator)) {
		return root
	}
	return root + string(filepath.Separator)
}
