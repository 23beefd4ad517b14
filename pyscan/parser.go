package pyscan

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// classInfo is one class definition with the raw superclass expressions from
// its header.
type classInfo struct {
	FQN    string
	Supers []string
}

// rawCall is a call site before resolution: the caller's FQN and the dotted
// target text as written.
type rawCall struct {
	Caller string
	Target string
}

// fileInfo is everything the scanner extracts from one Python file.
type fileInfo struct {
	Path      string
	Module    string
	IsPackage bool

	// Imports holds absolute dotted module names this file imports,
	// relative imports already resolved against the file's package.
	Imports []string
	// bindings maps local names to the dotted names they stand for:
	// imported modules and symbols, plus the file's own top-level defs.
	bindings map[string]string

	Classes   []classInfo
	Functions []string
	Calls     []rawCall
}

// parseFile parses one Python source file into a fileInfo.
func parseFile(path, module string, isPackage bool, source []byte) (*fileInfo, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	defer tree.Close()

	info := &fileInfo{
		Path:      path,
		Module:    module,
		IsPackage: isPackage,
		bindings:  make(map[string]string),
	}

	walkDefinitions(tree.RootNode(), source, module, info)

	// The file's own top-level symbols shadow imported names.
	prefix := module + "."
	for _, class := range info.Classes {
		if name, ok := topLevelName(class.FQN, prefix); ok {
			info.bindings[name] = class.FQN
		}
	}
	for _, fn := range info.Functions {
		if name, ok := topLevelName(fn, prefix); ok {
			info.bindings[name] = fn
		}
	}

	return info, nil
}

func topLevelName(fqn, modulePrefix string) (string, bool) {
	name := strings.TrimPrefix(fqn, modulePrefix)
	if name == fqn || strings.Contains(name, ".") {
		return "", false
	}
	return name, true
}

// walkDefinitions walks the syntax tree carrying the enclosing scope's FQN.
func walkDefinitions(n *sitter.Node, source []byte, scope string, info *fileInfo) {
	if n == nil {
		return
	}

	switch n.Type() {
	case "import_statement":
		collectImportStatement(n, source, info)

	case "import_from_statement":
		collectImportFrom(n, source, info)

	case "class_definition":
		name := n.ChildByFieldName("name")
		if name == nil {
			break
		}
		fqn := scope + "." + name.Content(source)
		info.Classes = append(info.Classes, classInfo{
			FQN:    fqn,
			Supers: superclasses(n, source),
		})
		walkChildren(n.ChildByFieldName("body"), source, fqn, info)
		return

	case "function_definition":
		name := n.ChildByFieldName("name")
		if name == nil {
			break
		}
		fqn := scope + "." + name.Content(source)
		info.Functions = append(info.Functions, fqn)
		walkChildren(n.ChildByFieldName("body"), source, fqn, info)
		return

	case "call":
		if target := dottedName(n.ChildByFieldName("function"), source); target != "" {
			info.Calls = append(info.Calls, rawCall{Caller: scope, Target: target})
		}
	}

	walkChildren(n, source, scope, info)
}

func walkChildren(n *sitter.Node, source []byte, scope string, info *fileInfo) {
	if n == nil {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walkDefinitions(n.Child(i), source, scope, info)
	}
}

// collectImportStatement handles `import a.b` and `import a.b as c`.
func collectImportStatement(n *sitter.Node, source []byte, info *fileInfo) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "dotted_name":
			module := strings.TrimSpace(child.Content(source))
			if module == "" {
				continue
			}
			info.Imports = append(info.Imports, module)
			// `import a.b` binds the top-level package name a.
			root := module
			if j := strings.Index(root, "."); j >= 0 {
				root = root[:j]
			}
			info.bind(root, root)
		case "aliased_import":
			name := child.ChildByFieldName("name")
			alias := child.ChildByFieldName("alias")
			if name == nil || alias == nil {
				continue
			}
			module := strings.TrimSpace(name.Content(source))
			info.Imports = append(info.Imports, module)
			info.bind(alias.Content(source), module)
		}
	}
}

// collectImportFrom handles `from M import x, y as z` including relative
// module prefixes.
func collectImportFrom(n *sitter.Node, source []byte, info *fileInfo) {
	moduleNode := n.ChildByFieldName("module_name")
	if moduleNode == nil {
		return
	}

	module := resolveImportModule(moduleNode, source, info)
	if module == "" {
		return
	}
	info.Imports = append(info.Imports, module)

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || child.StartByte() == moduleNode.StartByte() {
			continue
		}
		switch child.Type() {
		case "dotted_name":
			name := strings.TrimSpace(child.Content(source))
			if name != "" && !strings.Contains(name, ".") {
				info.bind(name, module+"."+name)
			}
		case "aliased_import":
			name := child.ChildByFieldName("name")
			alias := child.ChildByFieldName("alias")
			if name == nil || alias == nil {
				continue
			}
			info.bind(alias.Content(source), module+"."+strings.TrimSpace(name.Content(source)))
		}
	}
}

// resolveImportModule turns an import's module expression into an absolute
// dotted name, resolving leading dots against the importing file's package.
// A relative import that climbs past the scan root resolves to "".
func resolveImportModule(n *sitter.Node, source []byte, info *fileInfo) string {
	text := strings.TrimSpace(n.Content(source))
	if n.Type() != "relative_import" {
		return text
	}

	dots := 0
	for dots < len(text) && text[dots] == '.' {
		dots++
	}
	rest := text[dots:]

	base := packageOf(info.Module, info.IsPackage)
	for climb := 1; climb < dots; climb++ {
		if base == "" {
			return ""
		}
		if i := strings.LastIndex(base, "."); i >= 0 {
			base = base[:i]
		} else {
			base = ""
		}
	}

	switch {
	case rest == "":
		return base
	case base == "":
		return rest
	default:
		return base + "." + rest
	}
}

// superclasses returns the dotted base-class expressions of a class header.
// Keyword arguments (metaclass=...) and non-name expressions are skipped.
func superclasses(n *sitter.Node, source []byte) []string {
	args := n.ChildByFieldName("superclasses")
	if args == nil {
		return nil
	}

	var supers []string
	for i := 0; i < int(args.NamedChildCount()); i++ {
		if name := dottedName(args.NamedChild(i), source); name != "" {
			supers = append(supers, name)
		}
	}
	return supers
}

// dottedName renders an identifier or attribute chain as dotted text, or ""
// for any other expression shape.
func dottedName(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	switch n.Type() {
	case "identifier":
		return n.Content(source)
	case "attribute":
		object := dottedName(n.ChildByFieldName("object"), source)
		attribute := n.ChildByFieldName("attribute")
		if object == "" || attribute == nil {
			return ""
		}
		return object + "." + attribute.Content(source)
	default:
		return ""
	}
}

// bind records a local name binding unless the name is already bound; the
// first binding in file order wins, matching how shadowing reads top-down.
func (info *fileInfo) bind(name, target string) {
	if name == "" {
		return
	}
	if _, exists := info.bindings[name]; !exists {
		info.bindings[name] = target
	}
}
