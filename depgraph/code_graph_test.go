package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFold_BuildsModuleAndDefTables(t *testing.T) {
	g := Fold([]Record{
		{Type: TypeModule, Module: "proj.a", File: "/proj/a.py"},
		{Type: TypeModule, Module: "proj.b", File: "/proj/b.py"},
		{Type: TypeClassDef, Fullname: "proj.a.C", File: "/proj/a.py"},
		{Type: TypeFunctionDef, Fullname: "proj.a.f", File: "/proj/a.py"},
	})

	assert.Equal(t, map[string]string{
		"proj.a": "/proj/a.py",
		"proj.b": "/proj/b.py",
	}, g.Modules)
	assert.Equal(t, map[string]string{"proj.a.C": "/proj/a.py"}, g.ClassDefs)
	assert.Equal(t, map[string]string{"proj.a.f": "/proj/a.py"}, g.FunctionDefs)
}

func TestFold_CollapsesIdenticalReEmission(t *testing.T) {
	call := Record{Type: TypeCall, Caller: "proj.a.f", Callee: "proj.b.g", File: "/proj/a.py"}
	g := Fold([]Record{call, call, call})

	assert.Equal(t, []Call{{Caller: "proj.a.f", Callee: "proj.b.g", File: "/proj/a.py"}}, g.Calls)
}

func TestFold_InvalidateStartsFreshGeneration(t *testing.T) {
	g := Fold([]Record{
		{Type: TypeModule, Module: "proj.a", File: "/proj/a.py"},
		{Type: TypeImport, Importer: "proj.a", Importee: "proj.old", File: "/proj/a.py"},
		{Type: TypeFunctionDef, Fullname: "proj.a.removed", File: "/proj/a.py"},
		// proj.a is rechecked; the old edge and def are not re-emitted.
		{Type: TypeInvalidate, Module: "proj.a", File: "/proj/a.py"},
		{Type: TypeImport, Importer: "proj.a", Importee: "proj.new", File: "/proj/a.py"},
		{Type: TypeFunctionDef, Fullname: "proj.a.kept", File: "/proj/a.py"},
	})

	assert.Equal(t, map[string][]string{
		"proj.a":   {"proj.new"},
		"proj.new": nil,
	}, g.ImportAdjacency())
	assert.Equal(t, map[string]string{"proj.a.kept": "/proj/a.py"}, g.FunctionDefs)
}

func TestFold_InvalidateResolvesFileThroughModuleTable(t *testing.T) {
	g := Fold([]Record{
		{Type: TypeModule, Module: "proj.a", File: "/proj/a.py"},
		{Type: TypeCall, Caller: "proj.a.f", Callee: "proj.b.g", File: "/proj/a.py"},
		{Type: TypeInvalidate, Module: "proj.a"},
	})

	assert.Empty(t, g.Calls)
	// The module binding itself survives invalidation.
	assert.Equal(t, "/proj/a.py", g.Modules["proj.a"])
}

func TestFold_InvalidateOnlyAffectsOwningFile(t *testing.T) {
	g := Fold([]Record{
		{Type: TypeModule, Module: "proj.a", File: "/proj/a.py"},
		{Type: TypeModule, Module: "proj.b", File: "/proj/b.py"},
		{Type: TypeClassDef, Fullname: "proj.a.C", File: "/proj/a.py"},
		{Type: TypeClassDef, Fullname: "proj.b.D", File: "/proj/b.py"},
		{Type: TypeInvalidate, Module: "proj.a", File: "/proj/a.py"},
	})

	assert.Equal(t, map[string]string{"proj.b.D": "/proj/b.py"}, g.ClassDefs)
}

func TestFold_InvalidateBeforeFirstFactKeepsReEmission(t *testing.T) {
	// A recheck-only stream opens with the invalidate: nothing was owned
	// by the file yet, but the re-emitted generation must still land.
	g := Fold([]Record{
		{Type: TypeModule, Module: "proj.a", File: "/proj/a.py"},
		{Type: TypeInvalidate, Module: "proj.a"},
		{Type: TypeFunctionDef, Fullname: "proj.a.f", File: "/proj/a.py"},
		{Type: TypeImport, Importer: "proj.a", Importee: "proj.b", File: "/proj/a.py"},
	})

	assert.Equal(t, map[string]string{"proj.a.f": "/proj/a.py"}, g.FunctionDefs)
	assert.Equal(t, []string{"proj.b"}, g.ImportAdjacency()["proj.a"])
}

func TestFold_InvalidateForUnknownModuleIsIgnored(t *testing.T) {
	g := Fold([]Record{
		{Type: TypeClassDef, Fullname: "proj.a.C", File: "/proj/a.py"},
		{Type: TypeInvalidate, Module: "never.seen"},
	})

	assert.Len(t, g.ClassDefs, 1)
}

func TestCallAdjacency(t *testing.T) {
	g := Fold([]Record{
		{Type: TypeCall, Caller: "proj.a.f", Callee: "proj.b.g", File: "/proj/a.py"},
		{Type: TypeCall, Caller: "proj.a.f", Callee: "proj.b.h", File: "/proj/a.py"},
	})

	assert.Equal(t, map[string][]string{
		"proj.a.f": {"proj.b.g", "proj.b.h"},
		"proj.b.g": nil,
		"proj.b.h": nil,
	}, g.CallAdjacency())
}

func TestModuleGraph_DependencyPath(t *testing.T) {
	g := Fold([]Record{
		{Type: TypeModule, Module: "a", File: "/p/a.py"},
		{Type: TypeModule, Module: "b", File: "/p/b.py"},
		{Type: TypeModule, Module: "c", File: "/p/c.py"},
		{Type: TypeImport, Importer: "a", Importee: "b", File: "/p/a.py"},
		{Type: TypeImport, Importer: "b", Importee: "c", File: "/p/b.py"},
	})

	path, err := DependencyPath(g, "a", "c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, path)
}

func TestModuleGraph_NoPath(t *testing.T) {
	g := Fold([]Record{
		{Type: TypeImport, Importer: "a", Importee: "b", File: "/p/a.py"},
		{Type: TypeImport, Importer: "c", Importee: "d", File: "/p/c.py"},
	})

	_, err := DependencyPath(g, "a", "d")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not depend on")
}

func TestModuleGraph_DuplicateEdgesAreMerged(t *testing.T) {
	g := Fold([]Record{
		{Type: TypeImport, Importer: "a", Importee: "b", File: "/p/a.py"},
		{Type: TypeImport, Importer: "a", Importee: "b", File: "/p/other.py"},
	})

	mg, err := ModuleGraph(g)
	require.NoError(t, err)

	edges, err := mg.Edges()
	require.NoError(t, err)
	assert.Len(t, edges, 1)
}
