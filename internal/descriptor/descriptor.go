// # internal/descriptor/descriptor.go
package descriptor

// The normalized output model shared by all declaration compilers. Four
// variants share only the Descriptor contract, not state; consumers switch
// on DescKind instead of downcasting through a base type.

type DescKind int

const (
	DescClass DescKind = iota
	DescEnum
	DescMethodsBlock
	DescFunction
)

func (k DescKind) String() string {
	switch k {
	case DescClass:
		return "class"
	case DescEnum:
		return "enum"
	case DescMethodsBlock:
		return "methods"
	case DescFunction:
		return "function"
	}
	return "unknown"
}

type Descriptor interface {
	DescriptorKind() DescKind
	// Identity is the stable source identity used for catalog keying and
	// collision checks. It is never printed in stub output.
	Identity() string
}

type PassingKind int

const (
	PositionalOnly PassingKind = iota
	PositionalOrKeyword
	KeywordOnly
	VarPositional
	VarKeyword
)

func (k PassingKind) String() string {
	switch k {
	case PositionalOnly:
		return "positional-only"
	case PositionalOrKeyword:
		return "positional-or-keyword"
	case KeywordOnly:
		return "keyword-only"
	case VarPositional:
		return "var-positional"
	case VarKeyword:
		return "var-keyword"
	}
	return "unknown"
}

type Parameter struct {
	Name          string
	TypeSignature string
	Kind          PassingKind
	HasDefault    bool
	DefaultRepr   string
}

type Callable struct {
	Name       string
	Parameters []Parameter
	ReturnType string
	Doc        string
}

type Member struct {
	Name          string
	TypeSignature string
	Readable      bool
	Writable      bool
}

type Class struct {
	ExposedName    string
	Module         string
	Members        []Member
	Constructor    *Callable
	Doc            string
	SourceIdentity string
}

func (c Class) DescriptorKind() DescKind { return DescClass }
func (c Class) Identity() string         { return c.SourceIdentity }

type VariantPair struct {
	Name  string
	Value string
}

type Enum struct {
	ExposedName    string
	Module         string
	Variants       []VariantPair
	Doc            string
	SourceIdentity string
}

func (e Enum) DescriptorKind() DescKind { return DescEnum }
func (e Enum) Identity() string         { return e.SourceIdentity }

type MethodKind int

const (
	MethodInstance MethodKind = iota
	MethodStatic
	MethodClass
	MethodGetter
	MethodSetter
	MethodConstructor
)

func (k MethodKind) String() string {
	switch k {
	case MethodInstance:
		return "instance"
	case MethodStatic:
		return "static"
	case MethodClass:
		return "class"
	case MethodGetter:
		return "getter"
	case MethodSetter:
		return "setter"
	case MethodConstructor:
		return "constructor"
	}
	return "unknown"
}

type Method struct {
	Callable
	Kind MethodKind
}

// Property is a getter/setter pair merged by name.
type Property struct {
	Name          string
	TypeSignature string
	Readable      bool
	Writable      bool
	Doc           string
}

type MethodsBlock struct {
	TargetIdentity string
	Methods        []Method
	Properties     []Property
}

func (m MethodsBlock) DescriptorKind() DescKind { return DescMethodsBlock }
func (m MethodsBlock) Identity() string         { return m.TargetIdentity }

type Function struct {
	Callable
	Module         string
	SourceIdentity string
}

func (f Function) DescriptorKind() DescKind { return DescFunction }
func (f Function) Identity() string         { return f.SourceIdentity }
