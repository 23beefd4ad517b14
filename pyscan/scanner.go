package pyscan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/codegraph/recorder"
)

// Scan walks a Python source tree and replays it through the recorder's
// instrumentation hooks: modules first, then imports, then definitions, then
// references. That ordering matches the contract real host pipelines uphold,
// so every reference's destination module is registered before the reference
// is recorded.
//
// The scanner is purely syntactic. It performs no type checking and makes no
// invalidation decisions; references it cannot resolve through a file's
// imports and top-level definitions are skipped.
func Scan(root string, rec *recorder.Recorder) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	files, err := CollectPythonFiles(absRoot)
	if err != nil {
		return err
	}

	var infos []*fileInfo
	for _, path := range files {
		module, isPackage := moduleName(absRoot, path)
		if module == "" {
			continue
		}

		source, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		info, err := parseFile(path, module, isPackage, source)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", path, err)
			continue
		}
		infos = append(infos, info)
	}

	symbols := collectSymbols(infos)

	for _, info := range infos {
		if err := rec.ModuleSeen(info.Path, info.Module); err != nil {
			return err
		}
	}

	for _, info := range infos {
		for _, imported := range info.Imports {
			if err := rec.Import(info.Path, info.Module, imported); err != nil {
				return err
			}
		}
	}

	for _, info := range infos {
		for _, class := range info.Classes {
			if err := rec.ClassDef(info.Path, class.FQN); err != nil {
				return err
			}
		}
		for _, fn := range info.Functions {
			if err := rec.FunctionDef(info.Path, fn); err != nil {
				return err
			}
		}
	}

	for _, info := range infos {
		if err := emitReferences(info, symbols, rec); err != nil {
			return err
		}
	}

	return nil
}

// symbolTable indexes every scanned definition by FQN.
type symbolTable struct {
	classes   map[string]bool
	functions map[string]bool
}

func collectSymbols(infos []*fileInfo) *symbolTable {
	symbols := &symbolTable{
		classes:   make(map[string]bool),
		functions: make(map[string]bool),
	}
	for _, info := range infos {
		for _, class := range info.Classes {
			symbols.classes[class.FQN] = true
		}
		for _, fn := range info.Functions {
			symbols.functions[fn] = true
		}
	}
	return symbols
}

func emitReferences(info *fileInfo, symbols *symbolTable, rec *recorder.Recorder) error {
	for _, class := range info.Classes {
		for _, super := range class.Supers {
			dst := resolveName(info, super)
			if !symbols.classes[dst] {
				continue
			}
			if err := rec.ClassRef(info.Path, class.FQN, dst, recorder.Inheritance); err != nil {
				return err
			}
		}
	}

	for _, call := range info.Calls {
		target := resolveName(info, call.Target)
		switch {
		case symbols.classes[target]:
			// Calling a class constructs an instance.
			if err := rec.ClassRef(info.Path, call.Caller, target, recorder.Instantiation); err != nil {
				return err
			}
		case symbols.functions[target]:
			if err := rec.FunctionCall(info.Path, call.Caller, target); err != nil {
				return err
			}
		}
	}

	return nil
}

// resolveName expands a dotted name as written into a candidate FQN using
// the file's bindings. Unbound names are assumed local to the file's module;
// misses simply fail the symbol table lookup at the call sites above.
func resolveName(info *fileInfo, raw string) string {
	head, rest, hasRest := strings.Cut(raw, ".")

	bound, ok := info.bindings[head]
	if !ok {
		return info.Module + "." + raw
	}
	if !hasRest {
		return bound
	}
	return bound + "." + rest
}
