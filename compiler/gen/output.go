package gen

import (
	"fmt"
	"strings"
)

// Output is one generated file.
type Output struct {
	// Name is the output name the file belongs to, e.g. "Types::Shop".
	Name     string
	Artifact Artifact
	// Path is relative to the artifact root and carries no extension.
	Path    string
	Content string
}

// baseDef describes a base category definition emitted on every run.
type baseDef struct {
	base BaseCategory
	// parent is the graphql-ruby class the base extends.
	parent string
	// include names the user module mixed into the schema class.
	include string
	// impl reports whether a user module is generated.
	impl bool
}

var baseDefs = []baseDef{
	{base: BaseObject, parent: "GraphQL::Schema::Object", include: "Types::BaseObject", impl: true},
	{base: BaseObjectNoID, parent: "GraphQL::Schema::Object", include: "Types::BaseObject"},
	{base: BaseEnum, parent: "GraphQL::Schema::Enum", include: "Types::BaseEnum", impl: true},
	{base: BaseScalar, parent: "GraphQL::Schema::Scalar", include: "Types::BaseScalar", impl: true},
	{base: BaseInterface, parent: "::GraphQL::Schema::Interface", impl: true},
	{base: BaseUnion, parent: "GraphQL::Schema::Union", include: "Types::BaseUnion", impl: true},
	{base: BaseInput, parent: "GraphQL::Schema::InputObject"},
	{base: BasePayload, parent: "GraphQL::Schema::Object"},
}

func (g *Graph) baseOutputs() (schema, impl []*Output) {
	sm := g.SchemaModule()
	for _, d := range baseDefs {
		n, _ := ParseTypeName(string(d.base))
		var b strings.Builder
		switch {
		case d.base.IsModule():
			fmt.Fprintf(&b, "module %s::%s\n  include %s\nend", sm, n, d.parent)
		default:
			fmt.Fprintf(&b, "class %s::%s < %s\n", sm, n, d.parent)
			if d.base == BaseObject {
				b.WriteString("  global_id_field :id\n")
			}
			if d.include != "" {
				fmt.Fprintf(&b, "  include ::%s::%s\n", g.Namespace, d.include)
			}
			b.WriteString("end")
		}
		schema = append(schema, &Output{Name: n.String(), Artifact: ArtifactSchema, Path: n.Path(), Content: b.String()})
		if d.impl {
			impl = append(impl, &Output{
				Name:     n.String(),
				Artifact: ArtifactImplementation,
				Path:     n.Path(),
				Content:  fmt.Sprintf("module %s::%s\nend", g.Namespace, n),
			})
		}
	}
	return schema, impl
}

// rootOutput returns the schema class naming the entry points.
func (g *Graph) rootOutput() (*Output, error) {
	query, err := g.lookup("", "queryType", g.Schema.Query)
	if err != nil {
		return nil, err
	}
	mutation, err := g.lookup("", "mutationType", g.Schema.Mutation)
	if err != nil {
		return nil, err
	}
	content := fmt.Sprintf(`class %s::Schema < GraphQL::Schema
  query %s
  mutation %s

  def self.id_from_object(object, type_definition, query_context)
    ::GraphQL::Schema::UniqueWithinType.encode(object.class.name, object.id)
  end

  def self.object_from_id(id, query_context)
    class_name, item_id = ::GraphQL::Schema::UniqueWithinType.decode(id)
    ::Object.const_get(class_name).find(item_id)
  end
end`, g.SchemaModule(), g.schemaRef(query), g.schemaRef(mutation))
	return &Output{Name: "Schema", Artifact: ArtifactSchema, Path: "schema", Content: content}, nil
}

const manifestHeader = `# Generated file list.
# The order below does not follow the dependencies between files,
# so it cannot be required as-is. Use it to spot added or removed
# files and update the hand-maintained require list accordingly.
`

// manifest lists the implementation files, then the schema files.
func manifest(impl, schema []*Output) *Output {
	var b strings.Builder
	b.WriteString(manifestHeader)
	for i, o := range impl {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "require_relative \"./%s\"", o.Path)
	}
	b.WriteString("\n\n")
	for i, o := range schema {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "require_relative \"./schema/%s\"", o.Path)
	}
	b.WriteString("\n")
	return &Output{Name: "FileList", Artifact: ArtifactManifest, Path: "file_list", Content: b.String()}
}

// Outputs returns every generated file: the per-type artifacts, the schema
// root, the base definitions, the manifest and, if enabled, the SDL snapshot.
func (g *Graph) Outputs() ([]*Output, error) {
	if !g.assembled {
		return nil, NewGenerationError("outputs", "", "documents must be assembled first", nil)
	}
	var schema, impl, tests []*Output
	for _, n := range g.Nodes {
		name, path := n.Name.String(), n.Name.Path()
		schema = append(schema, &Output{Name: name, Artifact: ArtifactSchema, Path: path, Content: n.Doc(ArtifactSchema).String()})
		if !n.Editable() {
			continue
		}
		impl = append(impl, &Output{Name: name, Artifact: ArtifactImplementation, Path: path, Content: n.Doc(ArtifactImplementation).String()})
		tests = append(tests, &Output{Name: name, Artifact: ArtifactTest, Path: path, Content: n.Doc(ArtifactTest).String()})
	}
	root, err := g.rootOutput()
	if err != nil {
		return nil, err
	}
	baseSchema, baseImpl := g.baseOutputs()
	schema = append(append(schema, root), baseSchema...)
	impl = append(impl, baseImpl...)

	out := make([]*Output, 0, len(schema)+len(impl)+len(tests)+2)
	out = append(out, schema...)
	out = append(out, impl...)
	out = append(out, tests...)
	out = append(out, manifest(impl, schema))
	if g.SDL {
		sdl, err := g.Snapshot()
		if err != nil {
			return nil, err
		}
		out = append(out, &Output{Name: "SDL", Artifact: ArtifactSDL, Path: "schema.graphql", Content: sdl})
	}
	return out, nil
}
