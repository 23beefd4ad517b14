package pyscan

import (
	"path/filepath"
	"strings"
)

// moduleName derives the dotted module FQN of a Python file relative to the
// scan root. Package __init__ files take their package's name. The returned
// isPackage flag distinguishes "pkg/__init__.py" from "pkg.py" so relative
// imports resolve against the right package.
//
// Files that do not map to an importable module (a root-level __init__.py,
// or paths escaping the root) yield an empty name.
func moduleName(root, path string) (name string, isPackage bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}

	rel = strings.TrimSuffix(rel, ".py")
	parts := strings.Split(rel, string(filepath.Separator))

	if parts[len(parts)-1] == "__init__" {
		parts = parts[:len(parts)-1]
		isPackage = true
	}
	if len(parts) == 0 {
		return "", false
	}

	return strings.Join(parts, "."), isPackage
}

// packageOf returns the package a module's relative imports resolve against:
// the module itself for packages, its parent otherwise.
func packageOf(module string, isPackage bool) string {
	if isPackage {
		return module
	}
	if i := strings.LastIndex(module, "."); i >= 0 {
		return module[:i]
	}
	return ""
}
