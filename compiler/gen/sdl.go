package gen

import (
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"

	"github.com/syssam/gqlscaffold/compiler/load"
)

// Snapshot renders the generated types as GraphQL SDL. Skipped types,
// deprecated members and built-ins are left out, so the snapshot shows
// exactly what the generated schema covers.
func (g *Graph) Snapshot() (string, error) {
	if !g.classified {
		return "", NewGenerationError("sdl", "schema.graphql", "types must be classified first", nil)
	}
	doc := &ast.SchemaDocument{
		Schema: ast.SchemaDefinitionList{{
			OperationTypes: ast.OperationTypeDefinitionList{
				{Operation: ast.Query, Type: g.Schema.Query},
				{Operation: ast.Mutation, Type: g.Schema.Mutation},
			},
		}},
	}
	for _, n := range g.Nodes {
		doc.Definitions = append(doc.Definitions, definition(n.Type))
	}
	var b strings.Builder
	formatter.NewFormatter(&b).FormatSchemaDocument(doc)
	return b.String(), nil
}

func definition(t load.Type) *ast.Definition {
	def := &ast.Definition{
		Kind:        t.Kind(),
		Name:        t.TypeName(),
		Description: deref(t.Doc()),
	}
	switch t := t.(type) {
	case *load.Object:
		def.Interfaces = refNames(t.Interfaces)
		def.Fields = fieldDefs(t.Fields)
	case *load.Interface:
		def.Interfaces = refNames(t.Interfaces)
		def.Fields = fieldDefs(t.Fields)
	case *load.Union:
		def.Types = refNames(t.PossibleTypes)
	case *load.Enum:
		for _, v := range t.Values {
			if v.IsDeprecated {
				continue
			}
			def.EnumValues = append(def.EnumValues, &ast.EnumValueDefinition{Name: v.Name, Description: deref(v.Description)})
		}
	case *load.InputObject:
		for _, v := range t.InputFields {
			if v.IsDeprecated {
				continue
			}
			def.Fields = append(def.Fields, &ast.FieldDefinition{
				Name:         v.Name,
				Description:  deref(v.Description),
				Type:         astType(v.Type),
				DefaultValue: literal(v.DefaultValue),
			})
		}
	}
	return def
}

func fieldDefs(fields []*load.Field) ast.FieldList {
	var list ast.FieldList
	for _, f := range fields {
		if f.IsDeprecated {
			continue
		}
		fd := &ast.FieldDefinition{Name: f.Name, Description: deref(f.Description), Type: astType(f.Type)}
		for _, a := range f.Args {
			if a.IsDeprecated {
				continue
			}
			fd.Arguments = append(fd.Arguments, &ast.ArgumentDefinition{
				Name:         a.Name,
				Description:  deref(a.Description),
				Type:         astType(a.Type),
				DefaultValue: literal(a.DefaultValue),
			})
		}
		list = append(list, fd)
	}
	return list
}

// astType converts a reference chain to its AST form.
func astType(r *load.TypeRef) *ast.Type {
	switch {
	case r == nil:
		return nil
	case r.Kind == load.NonNull:
		t := astType(r.OfType)
		if t != nil {
			t.NonNull = true
		}
		return t
	case r.Kind == load.List:
		return &ast.Type{Elem: astType(r.OfType)}
	default:
		return &ast.Type{NamedType: r.TypeName()}
	}
}

// literal wraps an introspection default value. Introspection reports
// defaults as GraphQL source text, which is printed verbatim.
func literal(v *string) *ast.Value {
	if v == nil {
		return nil
	}
	return &ast.Value{Raw: *v, Kind: ast.EnumValue}
}

func refNames(refs []*load.TypeRef) []string {
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.TypeName())
	}
	return names
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
