package depgraph

import "sort"

// ClassRef is a folded class reference edge.
type ClassRef struct {
	Src  string
	Dst  string
	Kind string
	File string
}

// Call is a folded function call edge.
type Call struct {
	Caller string
	Callee string
	File   string
}

// CodeGraph is the deduplicated result of folding an event stream.
type CodeGraph struct {
	// Modules maps module FQNs to their defining files.
	Modules map[string]string
	// Imports maps each importer module to its importees.
	Imports map[string][]string
	// ClassDefs and FunctionDefs map symbol FQNs to their defining files.
	ClassDefs    map[string]string
	FunctionDefs map[string]string
	ClassRefs    []ClassRef
	Calls        []Call
}

// Fold collapses an event stream into a CodeGraph.
//
// The recorder never retracts: a rechecked module re-emits its facts after an
// invalidate record. Fold implements the consumer side of that contract with
// last-write-wins semantics — an invalidate for module M discards every fact
// previously owned by M's file (its defs, imports, refs and calls), so the
// recheck's re-emission replaces the stale generation. Re-emission of an
// identical fact within one generation is collapsed to a single edge.
func Fold(records []Record) *CodeGraph {
	modules := make(map[string]string)
	facts := make(map[string][]Record)
	seen := make(map[string]map[Record]bool)
	var fileOrder []string

	own := func(record Record) {
		file := record.File
		if seen[file] == nil {
			seen[file] = make(map[Record]bool)
			facts[file] = nil
			fileOrder = append(fileOrder, file)
		}
		if seen[file][record] {
			return
		}
		seen[file][record] = true
		facts[file] = append(facts[file], record)
	}

	for _, record := range records {
		switch record.Type {
		case TypeModule:
			modules[record.Module] = record.File

		case TypeInvalidate:
			file := record.File
			if file == "" {
				file = modules[record.Module]
			}
			if file == "" {
				continue
			}
			// Start a fresh generation for this file. The module
			// binding survives: the recheck re-asserts it. A file
			// first seen through its invalidate record (the shape a
			// truncated recheck-only stream has) still joins the
			// output order so its re-emitted facts are kept.
			if seen[file] == nil {
				fileOrder = append(fileOrder, file)
			}
			facts[file] = nil
			seen[file] = make(map[Record]bool)

		case TypeImport, TypeClassDef, TypeClassRef, TypeFunctionDef, TypeCall:
			own(record)

		default:
			// Unknown record types from newer producers are skipped.
		}
	}

	g := &CodeGraph{
		Modules:      modules,
		Imports:      make(map[string][]string),
		ClassDefs:    make(map[string]string),
		FunctionDefs: make(map[string]string),
	}

	for _, file := range fileOrder {
		for _, record := range facts[file] {
			switch record.Type {
			case TypeImport:
				g.Imports[record.Importer] = append(g.Imports[record.Importer], record.Importee)
			case TypeClassDef:
				g.ClassDefs[record.Fullname] = record.File
			case TypeFunctionDef:
				g.FunctionDefs[record.Fullname] = record.File
			case TypeClassRef:
				g.ClassRefs = append(g.ClassRefs, ClassRef{
					Src:  record.Src,
					Dst:  record.Dst,
					Kind: record.Kind,
					File: record.File,
				})
			case TypeCall:
				g.Calls = append(g.Calls, Call{
					Caller: record.Caller,
					Callee: record.Callee,
					File:   record.File,
				})
			}
		}
	}

	return g
}

// ImportAdjacency returns the import graph as a sorted adjacency list. Every
// importee appears as a vertex even when nothing is known about its own
// imports, so formatters render isolated leaf modules.
func (g *CodeGraph) ImportAdjacency() map[string][]string {
	adjacency := make(map[string][]string, len(g.Imports))
	for module := range g.Modules {
		adjacency[module] = nil
	}
	for importer, importees := range g.Imports {
		adjacency[importer] = append([]string(nil), importees...)
		sort.Strings(adjacency[importer])
		for _, importee := range importees {
			if _, ok := adjacency[importee]; !ok {
				adjacency[importee] = nil
			}
		}
	}
	return adjacency
}

// CallAdjacency returns the call graph as a sorted adjacency list keyed by
// caller FQN.
func (g *CodeGraph) CallAdjacency() map[string][]string {
	adjacency := make(map[string][]string)
	for _, call := range g.Calls {
		adjacency[call.Caller] = append(adjacency[call.Caller], call.Callee)
		if _, ok := adjacency[call.Callee]; !ok {
			adjacency[call.Callee] = nil
		}
	}
	for caller := range adjacency {
		sort.Strings(adjacency[caller])
	}
	return adjacency
}
