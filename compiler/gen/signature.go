package gen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/syssam/gqlscaffold/compiler/load"
)

// Signature is a resolved type reference.
type Signature struct {
	// Base is the schema name of the leaf type, without connection suffix.
	Base string
	// Definition is the graphql-ruby type expression, including the
	// nullability keyword, e.g. "[::Ns::Schema::Types::Foo], null: false".
	Definition string
	// Short is the GraphQL notation, e.g. "[Foo!]!".
	Short string
	// Connection reports a leaf with a connection suffix.
	Connection bool
	// Array reports a reference wrapped in a list.
	Array bool
}

// nullability keywords of fields and arguments.
type nullability struct {
	nullable, nonNull string
}

var (
	fieldNull   = nullability{nullable: ", null: true", nonNull: ", null: false"}
	argRequired = nullability{nullable: ", required: false", nonNull: ", required: true"}
)

// resolve walks a reference chain from the leaf outwards and builds its
// signature. When owner is set the reference is a field of owner, and the
// edge owner -> leaf is recorded; on a mutual reference a forward
// declaration of the leaf is added to the owner's schema preamble.
func (g *Graph) resolve(ownerName string, owner *Node, field string, ref *load.TypeRef, kw nullability) (*Signature, error) {
	if !g.classified {
		return nil, fmt.Errorf("gen: resolve before classification")
	}
	chain, err := ref.Chain()
	if err != nil {
		return nil, NewSchemaError(ownerName, field, "invalid type reference", err)
	}
	sig := &Signature{}
	var s string
	for i := len(chain) - 1; i >= 0; i-- {
		switch node := chain[i]; node.Kind {
		case load.NonNull:
			if strings.HasSuffix(s, kw.nullable) {
				s = strings.TrimSuffix(s, kw.nullable) + kw.nonNull
			}
		case load.List:
			sig.Array = true
			s = "[" + s + "]" + kw.nullable
		default:
			base, conn := isConnection(node.TypeName())
			n, err := g.lookup(ownerName, field, base)
			if err != nil {
				return nil, err
			}
			sig.Base, sig.Connection = base, conn
			if owner != nil {
				g.declareMutual(owner, n)
			}
			s = g.schemaRef(n)
			if conn {
				s += ".connection_type"
			}
			s += kw.nullable
		}
	}
	// graphql-ruby rejects explicit nullability on list items that match
	// its default.
	s = strings.ReplaceAll(s, fieldNull.nonNull+"]", "]")
	if kw == argRequired {
		s = strings.ReplaceAll(s, argRequired.nonNull+"]", "]")
		s = strings.ReplaceAll(s, argRequired.nullable+"]", "]")
	}
	sig.Definition = s
	sig.Short = g.shorten(s)
	return sig, nil
}

// declareMutual records owner -> n and, when n already references owner,
// forward-declares n in the owner's schema document.
func (g *Graph) declareMutual(owner *Node, n TypeName) {
	from, to := owner.Name.String(), n.String()
	if !g.dependsOn(from, to) || n.IsExternal() {
		return
	}
	doc := owner.Doc(ArtifactSchema)
	decl := g.forwardDecl(n)
	if doc.Contains(Preamble, decl) {
		return
	}
	g.Log().Info("mutual dependency, adding forward declaration", "type", from, "depends_on", to)
	doc.Unshift(Preamble, decl)
}

// ResolveField resolves the type of a field declared on owner.
func (g *Graph) ResolveField(owner *Node, f *load.Field) (*Signature, error) {
	return g.resolve(owner.Type.TypeName(), owner, f.Name, f.Type, fieldNull)
}

// ResolveArgument resolves the type of an argument or input field.
func (g *Graph) ResolveArgument(owner string, v *load.InputValue) (*Signature, error) {
	return g.resolve(owner, nil, v.Name, v.Type, argRequired)
}

var modulePrefix = regexp.MustCompile(`\b(?:Types|Interfaces|Inputs|Payloads)::`)

// shorten converts a graphql-ruby type expression to GraphQL notation.
func (g *Graph) shorten(s string) string {
	s = strings.ReplaceAll(s, "::"+g.SchemaModule()+"::", "")
	s = strings.ReplaceAll(s, "::GraphQL::Types::", "")
	s = modulePrefix.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, ".connection_type", connectionSuffix)
	s = markListItems(s)
	s = strings.ReplaceAll(s, fieldNull.nullable, "")
	s = strings.ReplaceAll(s, fieldNull.nonNull, "!")
	s = strings.ReplaceAll(s, argRequired.nullable, "")
	s = strings.ReplaceAll(s, argRequired.nonNull, "!")
	return s
}

// markListItems marks the item type of a list as non-null unless the item
// carries an explicit nullable keyword.
func markListItems(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == ']' && !strings.HasSuffix(s[:i], fieldNull.nullable) {
			b.WriteString("!]")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// Argument is a resolved field argument or input field.
type Argument struct {
	// Name is the Ruby name of the argument.
	Name string
	// Type is the GraphQL notation of the argument type.
	Type        string
	Description *string
	// Default is the Ruby literal of the default value, if any.
	Default    string
	HasDefault bool
}

// connectionArgs are the pagination arguments graphql-ruby adds to
// connection fields by itself.
var connectionArgs = map[string]bool{
	"first":    true,
	"last":     true,
	"before":   true,
	"after":    true,
	"pageInfo": true,
}

var literalDefault = regexp.MustCompile(`^(?:\d+(?:\.\d+)?|false|true)$`)

// defaultLiteral converts an introspection default value to Ruby.
func defaultLiteral(v string) string {
	if literalDefault.MatchString(v) {
		return v
	}
	return "'" + v + "'"
}

// arguments resolves the arguments of a field (level 2) or the fields of
// an input object (level 1) and appends their definitions to the schema
// document of n.
func (g *Graph) arguments(n *Node, args []*load.InputValue, level int, connection bool) ([]*Argument, error) {
	var out []*Argument
	for _, a := range args {
		if a.IsDeprecated || connection && connectionArgs[a.Name] {
			continue
		}
		sig, err := g.ResolveArgument(n.Type.TypeName(), a)
		if err != nil {
			return nil, err
		}
		arg := &Argument{
			Name:        underscore(a.Name),
			Type:        sig.Short,
			Description: a.Description,
		}
		line := "argument :" + arg.Name + ", " + sig.Definition + ","
		if a.DefaultValue != nil {
			arg.Default, arg.HasDefault = defaultLiteral(*a.DefaultValue), true
			line += " default_value: " + arg.Default + ","
		}
		n.Doc(ArtifactSchema).Append(Fields, indent(level, line+" description: ")+rubyDoc(a.Description))
		out = append(out, arg)
	}
	return out, nil
}
