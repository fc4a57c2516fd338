package gen

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/syssam/gqlscaffold/compiler/builtin"
	"github.com/syssam/gqlscaffold/compiler/load"
)

type (
	// Graph holds the generation state of one schema: the name table
	// built by classification and the documents filled by assembly.
	// Classification must complete before any signature is resolved.
	Graph struct {
		*Config
		// Schema is the loaded introspection schema.
		Schema *load.Schema
		// Nodes holds the classified types, in schema order.
		Nodes []*Node
		// Problems collects non-fatal findings.
		Problems Problems

		builtins *builtin.Registry
		// types holds every schema type, including skipped ones.
		types map[string]load.Type
		// names maps schema names to output names, built-ins included.
		names map[string]TypeName
		// owners maps output names back to the schema name that claimed them.
		owners map[string]string
		// excluded holds schema names that are never generated.
		excluded map[string]bool
		nodes    map[string]*Node
		// depends records "A references B" edges between output names.
		depends map[string]map[string]bool
		// expanding holds the types whose example is being synthesized.
		expanding  map[string]bool
		classified bool
		assembled  bool
	}

	// Node is a classified schema type and its generated documents.
	Node struct {
		Type load.Type
		Name TypeName
		Base BaseCategory
		// Docs holds the schema, implementation and test documents.
		Docs [3]*Document
	}

	// Problems are findings that do not stop generation.
	Problems struct {
		// Directives lists custom directives the target framework lacks.
		Directives []string
	}
)

// Doc returns the document of the given artifact kind, which must be
// the schema, implementation or test artifact.
func (n *Node) Doc(a Artifact) *Document {
	if n.Docs[a] == nil {
		n.Docs[a] = &Document{}
	}
	return n.Docs[a]
}

// Editable reports whether the node gets implementation and test stubs.
func (n *Node) Editable() bool {
	return n.Name.Category.Editable()
}

// Empty reports whether no problem was recorded.
func (p Problems) Empty() bool {
	return len(p.Directives) == 0
}

// NewGraph creates the generation state for a schema. The registry
// supplies the built-in types; a nil registry means no built-ins.
func NewGraph(c *Config, schema *load.Schema, registry *builtin.Registry) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "config cannot be nil")
	}
	if schema == nil {
		return nil, NewConfigError("Schema", nil, "schema cannot be nil")
	}
	if registry == nil {
		registry = builtin.New(c.Log())
	}
	g := &Graph{
		Config:   c,
		Schema:   schema,
		builtins: registry,
	}
	return g, nil
}

// Build classifies every type and assembles all documents.
func (g *Graph) Build() error {
	if err := g.Classify(); err != nil {
		return err
	}
	return g.Assemble()
}

// Classify runs the first pass: it records every schema type and assigns
// an output name and base category to each type that is generated.
// Running it again on the same schema yields the same assignments.
func (g *Graph) Classify() error {
	g.types = make(map[string]load.Type, len(g.Schema.Types))
	g.names = make(map[string]TypeName)
	g.owners = make(map[string]string)
	g.excluded = make(map[string]bool)
	g.nodes = make(map[string]*Node)
	g.depends = make(map[string]map[string]bool)
	g.expanding = make(map[string]bool)
	g.Nodes = nil
	g.Problems = Problems{}
	g.classified, g.assembled = false, false

	renames := make(map[string]TypeName)
	for schemaName, v := range g.TypeNames {
		n, ok := ParseTypeName(v)
		if !ok {
			return NewConfigError("TypeNames", schemaName, fmt.Sprintf("invalid output name %q", v))
		}
		if n.IsExternal() {
			g.names[schemaName] = n
			g.excluded[schemaName] = true
			continue
		}
		renames[schemaName] = n
	}
	for _, name := range g.builtins.Types() {
		g.excluded[name] = true
		if _, ok := g.names[name]; ok {
			continue
		}
		id, _ := g.builtins.Identifier(name)
		g.names[name] = TypeName{External: id}
	}

	for _, t := range g.Schema.Types {
		g.types[t.TypeName()] = t
		if g.skip(t) {
			continue
		}
		n, ok := renames[t.TypeName()]
		if !ok {
			n = nameOf(t)
		}
		if err := g.addNode(t, n); err != nil {
			return err
		}
	}
	g.checkDirectives()
	g.classified = true
	return nil
}

// skip reports whether a top-level type is never generated.
func (g *Graph) skip(t load.Type) bool {
	return skippedName.MatchString(t.TypeName()) || t.Deprecated() || g.excluded[t.TypeName()]
}

// reservedPaths are the unprefixed output paths of the generated root
// files. A Types:: name with one of these paths would overwrite them.
var reservedPaths = map[string]string{
	"schema":    "(root schema definition)",
	"file_list": "(file list manifest)",
}

func (g *Graph) addNode(t load.Type, n TypeName) error {
	key := n.String()
	if owner, ok := g.owners[key]; ok && owner != t.TypeName() {
		return &NameCollisionError{Name: key, Existing: owner, Type: t.TypeName()}
	}
	if IsBaseCategory(key) {
		return &NameCollisionError{Name: key, Existing: "(base definition)", Type: t.TypeName()}
	}
	if owner, ok := reservedPaths[n.Path()]; ok && !n.IsExternal() {
		return &NameCollisionError{Name: key, Existing: owner, Type: t.TypeName()}
	}
	base := baseOf(n.Category, t.Kind())
	if b, ok := g.BaseOverrides[key]; ok {
		base = BaseCategory(b)
	}
	node := &Node{Type: t, Name: n, Base: base}
	g.names[t.TypeName()] = n
	g.owners[key] = t.TypeName()
	g.nodes[key] = node
	g.Nodes = append(g.Nodes, node)
	return nil
}

// checkDirectives records the non-deprecated directives that are not
// built into the target framework.
func (g *Graph) checkDirectives() {
	g.Log().Info("found directives", "count", len(g.Schema.Directives))
	g.Problems.Directives = g.Schema.UnsupportedDirectives(g.builtins.IsDirective)
	for _, d := range g.Problems.Directives {
		g.Log().Warn("directive is not supported by graphql-ruby", "directive", d)
	}
}

// NameOf returns the output name of a schema type.
func (g *Graph) NameOf(schemaName string) (TypeName, bool) {
	n, ok := g.names[schemaName]
	return n, ok
}

// NodeOf returns the node of a generated schema type.
func (g *Graph) NodeOf(schemaName string) (*Node, bool) {
	n, ok := g.names[schemaName]
	if !ok || n.IsExternal() {
		return nil, false
	}
	node, ok := g.nodes[n.String()]
	return node, ok
}

// IsBuiltin reports whether the schema type is excluded from generation
// because it is provided by the target framework or mapped externally.
func (g *Graph) IsBuiltin(schemaName string) bool {
	return g.excluded[schemaName]
}

// lookup returns the output name of a referenced type, or a schema error.
func (g *Graph) lookup(owner, field, schemaName string) (TypeName, error) {
	n, ok := g.names[schemaName]
	if !ok {
		return TypeName{}, NewSchemaError(owner, field, fmt.Sprintf("no output name for type %q", schemaName), nil)
	}
	return n, nil
}

// schemaRef returns the fully qualified schema constant of a name.
func (g *Graph) schemaRef(n TypeName) string {
	if n.IsExternal() {
		return n.External
	}
	return "::" + g.SchemaModule() + "::" + n.String()
}

// implRef returns the fully qualified implementation constant of a name.
func (g *Graph) implRef(n TypeName) string {
	if n.IsExternal() {
		return n.External
	}
	return "::" + g.Namespace + "::" + n.String()
}

// baseOfName returns the base category of a generated output name.
func (g *Graph) baseOfName(n TypeName) BaseCategory {
	if node, ok := g.nodes[n.String()]; ok {
		return node.Base
	}
	return BaseObject
}

// forwardDecl returns the empty definition that declares n ahead of use.
func (g *Graph) forwardDecl(n TypeName) string {
	base := g.baseOfName(n)
	if base.IsModule() {
		return fmt.Sprintf("module %s::%s; end", g.SchemaModule(), n)
	}
	return fmt.Sprintf("class %s::%s < %s::%s; end", g.SchemaModule(), n, g.SchemaModule(), base)
}

// dependsOn records that owner references ref. It reports whether ref
// already references owner.
func (g *Graph) dependsOn(owner, ref string) bool {
	if g.depends[owner] == nil {
		g.depends[owner] = make(map[string]bool)
	}
	g.depends[owner][ref] = true
	return owner != ref && g.depends[ref][owner]
}

// Dependencies returns the output names referenced by the given output name.
func (g *Graph) Dependencies(name string) []string {
	return slices.Sorted(maps.Keys(g.depends[name]))
}

// rootQuery returns the operation keyword used by test queries of t.
func (g *Graph) rootQuery(t load.Type) string {
	if t.TypeName() == g.Schema.Mutation {
		return "mutation"
	}
	return "query"
}

// factory returns the test factory of a type.
func (g *Graph) factory(t load.Type) string {
	name := underscore(t.TypeName())
	if f, ok := g.Factories[name]; ok {
		return f
	}
	return name
}

func isConnection(name string) (string, bool) {
	if base, ok := strings.CutSuffix(name, connectionSuffix); ok && base != "" {
		return base, true
	}
	return name, false
}
