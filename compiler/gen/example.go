package gen

import (
	"strings"

	"github.com/syssam/gqlscaffold/compiler/load"
)

type (
	// Example is a synthesized example value of a schema type. Leaf
	// examples carry a placeholder; object examples carry their members.
	Example struct {
		// Value is the placeholder of a leaf example, e.g. `"String"`.
		Value string
		// Fields holds the members of an object example, in schema order.
		Fields []*ExampleField
		object bool
	}

	// ExampleField is one member of an object example.
	ExampleField struct {
		Name string
		// Args holds the argument examples of the member, if any.
		Args  []*ExampleField
		Value *Example
	}
)

// IsObject reports whether the example has members.
func (e *Example) IsObject() bool { return e.object }

func leafExample(v string) *Example { return &Example{Value: v} }

func objectExample(fields ...*ExampleField) *Example {
	return &Example{Fields: fields, object: true}
}

// wrapConnection nests an example in the connection shape.
func wrapConnection(e *Example) *Example {
	return objectExample(
		&ExampleField{Name: "edges", Value: objectExample(&ExampleField{Name: "node", Value: e})},
		&ExampleField{Name: "pageInfo", Value: objectExample(
			&ExampleField{Name: "hasNextPage", Value: leafExample("")},
			&ExampleField{Name: "hasPreviousPage", Value: leafExample("")},
		)},
	)
}

// Example synthesizes the example of the named schema type. A type that
// is already being expanded yields the placeholder "<Name>..." so that
// cyclic types terminate.
func (g *Graph) Example(name string, array bool) (*Example, error) {
	if g.expanding[name] {
		return leafExample(`"` + name + `..."`), nil
	}
	t, ok := g.types[name]
	if !ok {
		if g.excluded[name] {
			return scalarExample(name, array), nil
		}
		return nil, NewSchemaError(name, "", "type not found in schema", nil)
	}
	g.expanding[name] = true
	defer delete(g.expanding, name)

	switch t := t.(type) {
	case *load.Scalar:
		return scalarExample(name, array), nil
	case *load.Enum:
		names := make([]string, len(t.Values))
		for i, v := range t.Values {
			names[i] = v.Name
		}
		return leafExample(`"` + strings.Join(names, " | ") + `"`), nil
	case *load.Union:
		names := make([]string, len(t.PossibleTypes))
		for i, p := range t.PossibleTypes {
			names[i] = p.TypeName()
		}
		return leafExample(strings.Join(names, " | ")), nil
	case *load.Object:
		return g.fieldsExample(name, t.Fields)
	case *load.Interface:
		return g.fieldsExample(name, t.Fields)
	case *load.InputObject:
		return g.inputExample(name, t.InputFields)
	}
	return nil, NewSchemaError(name, "", "unexpected kind "+string(t.Kind()), nil)
}

func scalarExample(name string, array bool) *Example {
	if array {
		return leafExample(`["` + name + `"]`)
	}
	return leafExample(`"` + name + `"`)
}

func (g *Graph) fieldsExample(owner string, fields []*load.Field) (*Example, error) {
	ex := objectExample()
	for _, f := range fields {
		if f.IsDeprecated {
			continue
		}
		sig, err := g.resolve(owner, nil, f.Name, f.Type, fieldNull)
		if err != nil {
			return nil, err
		}
		v, err := g.Example(sig.Base, false)
		if err != nil {
			return nil, err
		}
		if sig.Connection {
			v = wrapConnection(v)
		}
		args, err := g.argExamples(owner, f.Args)
		if err != nil {
			return nil, err
		}
		ex.Fields = append(ex.Fields, &ExampleField{Name: f.Name, Args: args, Value: v})
	}
	return ex, nil
}

func (g *Graph) inputExample(owner string, fields []*load.InputValue) (*Example, error) {
	ex := objectExample()
	for _, f := range fields {
		if f.IsDeprecated {
			continue
		}
		sig, err := g.ResolveArgument(owner, f)
		if err != nil {
			return nil, err
		}
		v, err := g.Example(sig.Base, false)
		if err != nil {
			return nil, err
		}
		if sig.Connection {
			v = wrapConnection(v)
		}
		ex.Fields = append(ex.Fields, &ExampleField{Name: f.Name, Value: v})
	}
	return ex, nil
}

// argExamples synthesizes example values for field arguments.
func (g *Graph) argExamples(owner string, args []*load.InputValue) ([]*ExampleField, error) {
	var out []*ExampleField
	for _, a := range args {
		if a.IsDeprecated {
			continue
		}
		sig, err := g.ResolveArgument(owner, a)
		if err != nil {
			return nil, err
		}
		if sig.Connection {
			return nil, NewSchemaError(owner, a.Name, "connection type in argument position", nil)
		}
		var v *Example
		switch sig.Base {
		case "Int", "Float":
			v = leafExample(sig.Base)
		case "Boolean":
			v = leafExample("false")
			if a.DefaultValue != nil {
				v = leafExample(*a.DefaultValue)
			}
		case "String":
			v = leafExample(`""`)
		default:
			if v, err = g.Example(sig.Base, sig.Array); err != nil {
				return nil, err
			}
		}
		out = append(out, &ExampleField{Name: a.Name, Value: v})
	}
	return out, nil
}

// RenderSelection renders members as a GraphQL selection set body. Each
// member starts on a new line; object members open a nested block.
func RenderSelection(fields []*ExampleField) string {
	var b strings.Builder
	for _, f := range fields {
		key := f.Name
		if len(f.Args) > 0 {
			args := RenderArguments(f.Args)
			if lineCount(args) > 1 {
				key += "(\n" + indent(1, args) + "\n)"
			} else {
				key += "(" + args + ")"
			}
		}
		b.WriteString("\n" + key)
		if f.Value.IsObject() {
			b.WriteString(" {" + indent(1, RenderSelection(f.Value.Fields)) + "\n}")
		}
	}
	return b.String()
}

// RenderArguments renders members as GraphQL arguments. Two or more
// members are put on separate lines.
func RenderArguments(fields []*ExampleField) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		v := f.Value.Value
		if f.Value.IsObject() {
			inner := RenderArguments(f.Value.Fields)
			if lineCount(inner) > 1 {
				v = "{\n" + indent(1, inner) + "\n}"
			} else {
				v = "{" + inner + "}"
			}
		}
		parts = append(parts, f.Name+": "+v)
	}
	if len(parts) < 2 {
		return strings.Join(parts, ", ")
	}
	return strings.Join(parts, ",\n")
}
