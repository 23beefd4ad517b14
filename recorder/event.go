package recorder

// Event is one code-relationship fact observed by the host pipeline.
// Each concrete event knows its wire discriminator; the emitting file is
// carried out-of-band and merged into the record at serialization time.
type Event interface {
	Type() string
}

// ModuleEvent declares that a module exists. Mainly used for dotted module
// name -> filename resolution (for filtering).
type ModuleEvent struct {
	Module string `json:"module"`
}

func (ModuleEvent) Type() string { return "module" }

// ImportEvent is a static import edge between two modules.
type ImportEvent struct {
	Importer string `json:"importer"`
	Importee string `json:"importee"`
}

func (ImportEvent) Type() string { return "import" }

// InvalidateEvent marks that a module's dependency component went stale and
// the module is about to be rechecked. Consumers use it to bound the
// generation of subsequent events when deduplicating.
type InvalidateEvent struct {
	Module string `json:"module"`
}

func (InvalidateEvent) Type() string { return "invalidate" }

// ClassDefEvent records a class definition.
type ClassDefEvent struct {
	Fullname string `json:"fullname"`
}

func (ClassDefEvent) Type() string { return "class_def" }

// ClassRefKind classifies how a class is referenced.
type ClassRefKind int

const (
	Inheritance ClassRefKind = iota + 1
	Instantiation
	// Reserved kinds below are part of the wire vocabulary but are not
	// emitted yet; populating them needs new host instrumentation.
	TypeInFunctionPrototype
	InstanceVarType
	ClassVarType
)

func (k ClassRefKind) String() string {
	switch k {
	case Inheritance:
		return "INHERITANCE"
	case Instantiation:
		return "INSTANTIATION"
	case TypeInFunctionPrototype:
		return "TYPE_IN_FUNCTION_PROTOTYPE"
	case InstanceVarType:
		return "IVAR_TYPE"
	case ClassVarType:
		return "CVAR_TYPE"
	default:
		return "UNKNOWN"
	}
}

// ClassRefEvent is a reference from one symbol to a class.
type ClassRefEvent struct {
	Src  string `json:"src"`
	Dst  string `json:"dst"`
	Kind string `json:"kind"`
}

func (ClassRefEvent) Type() string { return "class_ref" }

// FunctionDefEvent records a function or method definition.
type FunctionDefEvent struct {
	Fullname string `json:"fullname"`
}

func (FunctionDefEvent) Type() string { return "function_def" }

// FunctionCallEvent is a call edge between two functions.
type FunctionCallEvent struct {
	Caller string `json:"caller"`
	Callee string `json:"callee"`
}

func (FunctionCallEvent) Type() string { return "call" }
