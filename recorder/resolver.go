package recorder

import "strings"

// ModuleResolver maps fully-qualified module names to the absolute source
// files that define them. It is populated incrementally as the host pipeline
// processes modules and consulted to resolve the destination of cross-module
// references.
type ModuleResolver struct {
	modules map[string]string
}

func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{modules: make(map[string]string)}
}

// Register inserts or reaffirms the mapping for module. Registering the same
// module again is allowed; the last registration wins, which is what a
// recheck of the same module does.
func (r *ModuleResolver) Register(module, file string) {
	r.modules[module] = file
}

// Resolve returns the file that defines module, if it has been registered.
func (r *ModuleResolver) Resolve(module string) (string, bool) {
	file, ok := r.modules[module]
	return file, ok
}

// moduleOf strips the final dotted component of a fully-qualified symbol
// name, yielding the module expected to define it. A name with no dots is
// returned unchanged.
func moduleOf(fqn string) string {
	if i := strings.LastIndex(fqn, "."); i >= 0 {
		return fqn[:i]
	}
	return fqn
}
