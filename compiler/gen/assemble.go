package gen

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/gqlscaffold/compiler/load"
)

// Assemble runs the second pass: it fills the schema, implementation and
// test documents of every classified type.
func (g *Graph) Assemble() error {
	if !g.classified {
		return NewGenerationError("assemble", "", "types must be classified first", nil)
	}
	g.Log().Info("found types", "count", len(g.Schema.Types), "generated", len(g.Nodes))
	for _, n := range g.Nodes {
		n.Docs = [3]*Document{{}, {}, {}}
	}
	for _, n := range g.Nodes {
		if err := g.assemble(n); err != nil {
			return err
		}
	}
	g.assembled = true
	return nil
}

func (g *Graph) assemble(n *Node) error {
	g.header(n)
	switch t := n.Type.(type) {
	case *load.Object:
		if err := g.interfaces(n, t.Interfaces); err != nil {
			return err
		}
		if err := g.fields(n, t.Fields); err != nil {
			return err
		}
	case *load.Interface:
		if err := g.interfaces(n, t.Interfaces); err != nil {
			return err
		}
		if err := g.fields(n, t.Fields); err != nil {
			return err
		}
	case *load.Union:
		if err := g.possibleTypes(n, t.PossibleTypes); err != nil {
			return err
		}
	case *load.InputObject:
		if _, err := g.arguments(n, t.InputFields, 1, false); err != nil {
			return err
		}
	case *load.Enum:
		g.enumValues(n, t.Values)
	}
	n.Doc(ArtifactSchema).Append(Postamble, "end")
	if n.Editable() {
		n.Doc(ArtifactImplementation).Append(Postamble, "end")
		n.Doc(ArtifactTest).Append(Postamble, "  end\nend")
	}
	return nil
}

func (g *Graph) header(n *Node) {
	var (
		sm     = g.SchemaModule()
		schema = n.Doc(ArtifactSchema)
		desc   = rubyDoc(n.Type.Doc())
		name   = n.Type.TypeName()
	)
	if n.Base == BaseInterface {
		schema.Append(Header, fmt.Sprintf("module %s::%s\n  include ::%s::%s\n  graphql_name '%s'\n  description %s",
			sm, n.Name, sm, n.Base, name, desc))
		schema.Append(Includes, indent(1, "include "+g.implRef(n.Name)))
		schema.Append(DefinitionMethods, indent(1, "definition_methods do\nend"))
	} else {
		schema.Append(Header, fmt.Sprintf("class %s::%s < %s::%s\n  graphql_name '%s'\n  description %s",
			sm, n.Name, sm, n.Base, name, desc))
		if n.Editable() {
			schema.Append(Includes, indent(1, "include "+g.implRef(n.Name)))
		}
	}
	if !n.Editable() {
		return
	}
	n.Doc(ArtifactImplementation).Append(Header, fmt.Sprintf("# frozen_string_literal: true\nmodule %s::%s", g.Namespace, n.Name))

	label := underscore(name)
	n.Doc(ArtifactTest).Append(Header, fmt.Sprintf(`# frozen_string_literal: true
require 'spec_helper'

module %s
  describe '%s' do
    let!(:%s) { create(:%s) }
    let!(:ctx) { { current_store: current_store } }
    let!(:variables) { }
`, g.Namespace, n.Name, label, g.factory(n.Type)))
}

// interfaces declares the interfaces implemented by n.
func (g *Graph) interfaces(n *Node, refs []*load.TypeRef) error {
	for _, ref := range refs {
		if ref.OfType != nil || ref.Kind != string(ast.Interface) {
			return NewSchemaError(n.Type.TypeName(), ref.TypeName(), "unexpected interface reference shape", nil)
		}
		in, err := g.lookup(n.Type.TypeName(), ref.TypeName(), ref.TypeName())
		if err != nil {
			return err
		}
		n.Doc(ArtifactSchema).Append(Interfaces, indent(1, "implements "+g.schemaRef(in)))
		if n.Editable() {
			n.Doc(ArtifactImplementation).Append(Interfaces, indent(1, "include "+g.implRef(in)))
		}
	}
	return nil
}

// possibleTypes lists the members of a union. Members are forward-declared
// since they may not be defined before the union.
func (g *Graph) possibleTypes(n *Node, refs []*load.TypeRef) error {
	var (
		decls   []string
		members []string
	)
	for _, ref := range refs {
		if ref.OfType != nil || ref.Kind != string(ast.Object) {
			return NewSchemaError(n.Type.TypeName(), ref.TypeName(), "unexpected possible type reference shape", nil)
		}
		m, err := g.lookup(n.Type.TypeName(), ref.TypeName(), ref.TypeName())
		if err != nil {
			return err
		}
		if !m.IsExternal() {
			decls = append(decls, g.forwardDecl(m))
		}
		members = append(members, "  "+g.schemaRef(m))
	}
	if len(members) == 0 {
		return nil
	}
	doc := n.Doc(ArtifactSchema)
	if len(decls) > 0 {
		doc.Unshift(Preamble, strings.Join(decls, "\n"))
	}
	doc.Unshift(PossibleTypes, indent(1, "possible_types \\\n"+strings.Join(members, ",\n")))
	return nil
}

func (g *Graph) enumValues(n *Node, values []*load.EnumValue) {
	for _, v := range values {
		if v.IsDeprecated {
			continue
		}
		n.Doc(ArtifactSchema).Append(Fields, indent(1, "value '"+v.Name+"', ")+rubyDoc(v.Description))
	}
}

// fields emits the field definitions, implementation stubs and test stubs
// of an object or interface.
func (g *Graph) fields(n *Node, fields []*load.Field) error {
	schema := n.Doc(ArtifactSchema)
	for _, f := range fields {
		if f.IsDeprecated {
			continue
		}
		sig, err := g.ResolveField(n, f)
		if err != nil {
			return err
		}
		if sig.Connection && sig.Array {
			return NewSchemaError(n.Type.TypeName(), f.Name, "list of connections is not supported", nil)
		}
		method := underscore(f.Name)
		schema.Append(Fields, indent(1, "field :"+method+", "+sig.Definition+" do\n  description ")+rubyDoc(f.Description))
		args, err := g.arguments(n, f.Args, 2, sig.Connection)
		if err != nil {
			return err
		}
		schema.Append(Fields, indent(1, "end"))
		if !n.Editable() {
			continue
		}

		n.Doc(ArtifactImplementation).Append(Fields, indent(1, g.stub(f, sig, method, args)))

		spec, err := g.spec(n, f, sig, args)
		if err != nil {
			return err
		}
		n.Doc(ArtifactTest).Append(Fields, indent(2, spec))
	}
	return nil
}

// fieldComment returns the leading comment lines of a field.
func fieldComment(f *load.Field, args []*Argument, withDesc bool) string {
	var b strings.Builder
	b.WriteString("# " + f.Name)
	if f.Description != nil {
		b.WriteString(": " + oneline(f.Description))
	}
	for _, a := range args {
		b.WriteString("\n# @param " + a.Name + " [" + a.Type + "]")
		if a.HasDefault {
			b.WriteString(" (" + a.Default + ")")
		}
		if withDesc && a.Description != nil {
			b.WriteString(" " + oneline(a.Description))
		}
	}
	return b.String()
}

// stub returns the implementation method of a field.
func (g *Graph) stub(f *load.Field, sig *Signature, method string, args []*Argument) string {
	params := ""
	if len(args) > 0 {
		names := make([]string, len(args))
		for i, a := range args {
			names[i] = a.Name + ":"
		}
		params = "(" + strings.Join(names, ", ") + ")"
	}
	return fmt.Sprintf("\n%s\n# @return [%s]\ndef %s%s\n  raise ::%s::NotImplementedError.new\nend\n",
		fieldComment(f, args, true), sig.Short, method, params, g.Namespace)
}

// spec returns the test block of a field, with an example query.
func (g *Graph) spec(n *Node, f *load.Field, sig *Signature, args []*Argument) (string, error) {
	owner := n.Type.TypeName()
	value, err := g.Example(sig.Base, sig.Array)
	if err != nil {
		return "", err
	}
	if sig.Connection {
		value = wrapConnection(value)
	}
	argEx, err := g.argExamples(owner, f.Args)
	if err != nil {
		return "", err
	}
	selection := indent(5, RenderSelection([]*ExampleField{{Name: f.Name, Args: argEx, Value: value}}))
	return fmt.Sprintf(`%s
# @return [%s]
describe '%s' do
  let!(:query) {
    %%q{
      %s {
        %s {%s
        }
      }
    }
  }
  let!(:result) { {} }
  #it 'succeeds' do
  #  execute
  #  expect(response_hash).to eq(result_hash)
  #end
end
`, fieldComment(f, args, false), sig.Short, f.Name, g.rootQuery(n.Type), rules.CamelizeDownFirst(owner), selection), nil
}
