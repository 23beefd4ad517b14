package recorder

import "io"

// Options configures a Recorder at activation time.
type Options struct {
	// Output is a file path for the JSON Lines stream, or the Stdout
	// sentinel. Ignored when Writer is set.
	Output string

	// Writer, when non-nil, is used as the sink directly. The recorder
	// never closes it.
	Writer io.Writer

	// FilterRoots restricts recording to files under these directories.
	// Empty means record everything.
	FilterRoots []string
}

// Recorder is the façade the host pipeline calls at its instrumentation
// points. It owns the module table, the path filter and the output sink for
// one pipeline run; independent runs use independent recorders.
//
// A nil *Recorder is valid and records nothing, so hosts can wire the hooks
// unconditionally and only construct a recorder when the feature is enabled.
//
// The host is assumed single-threaded; hooks must not be called concurrently.
type Recorder struct {
	filter   *PathFilter
	resolver *ModuleResolver
	emitter  *Emitter
}

// New activates recording. It opens the output destination and canonicalizes
// the filter roots; either failing is fatal for the run.
func New(opts Options) (*Recorder, error) {
	filter, err := NewPathFilter(opts.FilterRoots)
	if err != nil {
		return nil, err
	}
	emitter, err := newEmitter(opts.Output, opts.Writer, filter)
	if err != nil {
		return nil, err
	}
	return &Recorder{
		filter:   filter,
		resolver: NewModuleResolver(),
		emitter:  emitter,
	}, nil
}

// Close releases the output sink.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	return r.emitter.Close()
}

// ModuleSeen records that module is defined by file. The host must call this
// before any reference into the module is processed; references observed
// earlier are dropped, never replayed.
func (r *Recorder) ModuleSeen(file, module string) error {
	if r == nil {
		return nil
	}
	r.resolver.Register(module, file)
	return r.emitter.Emit(ModuleEvent{Module: module}, file)
}

// Import records a static import edge. The host must call this during import
// graph construction, before SCCs and invalidation are computed, so the
// recorded import graph matches what invalidation decisions were based on.
// file is the importer's source file.
func (r *Recorder) Import(file, importer, importee string) error {
	if r == nil {
		return nil
	}
	return r.emitter.Emit(ImportEvent{Importer: importer, Importee: importee}, file)
}

// Invalidate records that module's dependency component went stale and the
// module is about to be rechecked. When file is empty the module's own file
// is taken from the module table; a restricted filter with no known file
// drops the record, since no scope can be established for it.
func (r *Recorder) Invalidate(file, module string) error {
	if r == nil {
		return nil
	}
	if file == "" {
		file, _ = r.resolver.Resolve(module)
	}
	return r.emitter.Emit(InvalidateEvent{Module: module}, file)
}

// ClassDef records a class definition in file.
func (r *Recorder) ClassDef(file, fullname string) error {
	if r == nil {
		return nil
	}
	return r.emitter.Emit(ClassDefEvent{Fullname: fullname}, file)
}

// ClassRef records a reference from src to the class dst. The edge is scoped
// on the destination: it is emitted only when dst's module is already in the
// module table and its file is under the filter roots. The referring side is
// carried in the src field whether or not its own file is in scope, so calls
// from outside the filter roots into filtered code still show up as edges.
func (r *Recorder) ClassRef(file, src, dst string, kind ClassRefKind) error {
	if r == nil {
		return nil
	}
	if !r.destinationInScope(dst) {
		return nil
	}
	return r.emitter.Append(ClassRefEvent{Src: src, Dst: dst, Kind: kind.String()}, file)
}

// FunctionDef records a function or method definition in file.
func (r *Recorder) FunctionDef(file, fullname string) error {
	if r == nil {
		return nil
	}
	return r.emitter.Emit(FunctionDefEvent{Fullname: fullname}, file)
}

// FunctionCall records a call edge. Scoped on the callee the same way
// ClassRef is scoped on its destination.
func (r *Recorder) FunctionCall(file, caller, callee string) error {
	if r == nil {
		return nil
	}
	if !r.destinationInScope(callee) {
		return nil
	}
	return r.emitter.Append(FunctionCallEvent{Caller: caller, Callee: callee}, file)
}

// destinationInScope resolves the module of a referenced symbol and applies
// the path filter to the module's file. Unregistered modules are out of
// scope: forward references across still-unprocessed modules are dropped as
// an accepted approximation, since the host checks dependencies first.
func (r *Recorder) destinationInScope(fqn string) bool {
	if !r.emitter.enabled() {
		return false
	}
	file, ok := r.resolver.Resolve(moduleOf(fqn))
	if !ok {
		return false
	}
	return r.filter.InScope(file)
}
