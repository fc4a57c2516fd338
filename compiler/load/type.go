package load

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// Kind is the kind of a named schema type.
type Kind = ast.DefinitionKind

// Wrapper kinds that may appear in a type reference chain.
const (
	NonNull = "NON_NULL"
	List    = "LIST"
)

// The following types describe one named type of an introspection schema.
// Each kind carries only the members relevant to it, so an input object can
// never hold output fields and vice versa.
type (
	// Type is implemented by every named type variant.
	Type interface {
		// TypeName returns the schema name of the type.
		TypeName() string
		// Kind returns the introspection kind of the type.
		Kind() Kind
		// Doc returns the type description, nil if unset.
		Doc() *string
		// Deprecated reports whether the type is marked deprecated.
		Deprecated() bool

		sealed()
	}

	// Header holds the members shared by all type variants.
	Header struct {
		Name         string
		Description  *string
		IsDeprecated bool
	}

	// Scalar is a SCALAR type.
	Scalar struct {
		Header
	}

	// Object is an OBJECT type.
	Object struct {
		Header
		Fields     []*Field
		Interfaces []*TypeRef
	}

	// Interface is an INTERFACE type.
	Interface struct {
		Header
		Fields     []*Field
		Interfaces []*TypeRef
	}

	// Union is a UNION type.
	Union struct {
		Header
		PossibleTypes []*TypeRef
	}

	// Enum is an ENUM type.
	Enum struct {
		Header
		Values []*EnumValue
	}

	// InputObject is an INPUT_OBJECT type.
	InputObject struct {
		Header
		InputFields []*InputValue
	}
)

// TypeName returns the schema name of the type.
func (h *Header) TypeName() string { return h.Name }

// Doc returns the type description.
func (h *Header) Doc() *string { return h.Description }

// Deprecated reports whether the type is deprecated.
func (h *Header) Deprecated() bool { return h.IsDeprecated }

func (*Header) sealed() {}

// Kind implements the Type interface.
func (*Scalar) Kind() Kind { return ast.Scalar }

// Kind implements the Type interface.
func (*Object) Kind() Kind { return ast.Object }

// Kind implements the Type interface.
func (*Interface) Kind() Kind { return ast.Interface }

// Kind implements the Type interface.
func (*Union) Kind() Kind { return ast.Union }

// Kind implements the Type interface.
func (*Enum) Kind() Kind { return ast.Enum }

// Kind implements the Type interface.
func (*InputObject) Kind() Kind { return ast.InputObject }

// Field is an output field of an object or interface.
type Field struct {
	Name              string        `json:"name"`
	Description       *string       `json:"description"`
	Args              []*InputValue `json:"args"`
	Type              *TypeRef      `json:"type"`
	IsDeprecated      bool          `json:"isDeprecated"`
	DeprecationReason *string       `json:"deprecationReason"`
}

// InputValue is a field argument or an input object field.
type InputValue struct {
	Name         string   `json:"name"`
	Description  *string  `json:"description"`
	Type         *TypeRef `json:"type"`
	DefaultValue *string  `json:"defaultValue"`
	IsDeprecated bool     `json:"isDeprecated"`
}

// EnumValue is one value of an enum type.
type EnumValue struct {
	Name              string  `json:"name"`
	Description       *string `json:"description"`
	IsDeprecated      bool    `json:"isDeprecated"`
	DeprecationReason *string `json:"deprecationReason"`
}

// Directive is a directive declared by the schema.
type Directive struct {
	Name         string        `json:"name"`
	Description  *string       `json:"description"`
	Locations    []string      `json:"locations"`
	Args         []*InputValue `json:"args"`
	IsDeprecated bool          `json:"isDeprecated"`
}

// TypeRef is one node of a type reference chain. Wrapper nodes (NON_NULL,
// LIST) point to the wrapped reference through OfType, and the chain ends
// with a single named leaf.
type TypeRef struct {
	Kind   string   `json:"kind"`
	Name   *string  `json:"name"`
	OfType *TypeRef `json:"ofType"`
}

// Named returns a reference to the named type of the given kind.
func Named(kind Kind, name string) *TypeRef {
	return &TypeRef{Kind: string(kind), Name: &name}
}

// NonNullOf wraps r in a NON_NULL node.
func NonNullOf(r *TypeRef) *TypeRef { return &TypeRef{Kind: NonNull, OfType: r} }

// ListOf wraps r in a LIST node.
func ListOf(r *TypeRef) *TypeRef { return &TypeRef{Kind: List, OfType: r} }

// IsWrapper reports whether the node is a NON_NULL or LIST wrapper.
func (r *TypeRef) IsWrapper() bool {
	return r.Name == nil && (r.Kind == NonNull || r.Kind == List)
}

// TypeName returns the name of the node, or "" for wrappers.
func (r *TypeRef) TypeName() string {
	if r == nil || r.Name == nil {
		return ""
	}
	return *r.Name
}

// Chain returns the nodes of the reference, outermost first. It fails if
// the chain is not terminated by exactly one named leaf.
func (r *TypeRef) Chain() ([]*TypeRef, error) {
	var chain []*TypeRef
	for n := r; n != nil; n = n.OfType {
		chain = append(chain, n)
		switch {
		case n.IsWrapper():
			if n.OfType == nil {
				return nil, fmt.Errorf("%s wrapper without wrapped type", n.Kind)
			}
		case n.Name == nil:
			return nil, fmt.Errorf("unnamed type reference of kind %q", n.Kind)
		case n.OfType != nil:
			return nil, fmt.Errorf("named type %q wraps another type", *n.Name)
		}
	}
	if len(chain) == 0 {
		return nil, fmt.Errorf("empty type reference")
	}
	return chain, nil
}

// Leaf returns the named leaf of the chain.
func (r *TypeRef) Leaf() *TypeRef {
	n := r
	for n != nil && n.OfType != nil {
		n = n.OfType
	}
	return n
}

// String renders the reference in GraphQL notation, e.g. "[Foo!]!".
func (r *TypeRef) String() string {
	if r == nil {
		return ""
	}
	switch {
	case r.Name != nil:
		return *r.Name
	case r.Kind == NonNull:
		return r.OfType.String() + "!"
	case r.Kind == List:
		return "[" + r.OfType.String() + "]"
	}
	return strings.ToLower(r.Kind)
}
