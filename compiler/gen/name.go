package gen

import (
	"regexp"
	"strings"

	"github.com/go-openapi/inflect"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/gqlscaffold/compiler/load"
)

// Category is the generation bucket of an output name.
type Category uint8

// Output categories.
const (
	CategoryType Category = iota
	CategoryInterface
	CategoryInput
	CategoryPayload
)

var categories = [...]struct{ name, module, dir string }{
	CategoryType:      {"Type", "Types", ""},
	CategoryInterface: {"Interface", "Interfaces", "interfaces"},
	CategoryInput:     {"Input", "Inputs", "inputs"},
	CategoryPayload:   {"Payload", "Payloads", "payloads"},
}

// String returns the category name.
func (c Category) String() string { return categories[c].name }

// Module returns the Ruby module holding the category's constants.
func (c Category) Module() string { return categories[c].module }

// Dir returns the directory of the category's files, "" for types.
func (c Category) Dir() string { return categories[c].dir }

// Editable reports whether types of this category get hand-editable
// implementation and test stubs.
func (c Category) Editable() bool {
	return c == CategoryType || c == CategoryInterface
}

// categoryOf returns the category whose module is mod.
func categoryOf(mod string) (Category, bool) {
	for i, c := range categories {
		if c.module == mod {
			return Category(i), true
		}
	}
	return 0, false
}

// TypeName is the output name assigned to a schema type.
type TypeName struct {
	Category Category
	// Name is the bare name, without category module.
	Name string
	// External holds the fully qualified constant of types that are
	// provided elsewhere (built-ins and manual external mappings).
	External string
}

// String returns the qualified name, e.g. "Inputs::Checkout".
func (n TypeName) String() string {
	if n.External != "" {
		return n.External
	}
	return n.Category.Module() + "::" + n.Name
}

// IsExternal reports whether the name refers to a constant that is not generated.
func (n TypeName) IsExternal() bool { return n.External != "" }

// Path returns the extensionless file path of the type, relative to its root.
func (n TypeName) Path() string {
	file := underscore(n.Name)
	if dir := n.Category.Dir(); dir != "" {
		return dir + "/" + file
	}
	return file
}

// ParseTypeName parses a qualified name such as "Types::Shop" or an
// external constant such as "::Money".
func ParseTypeName(s string) (TypeName, bool) {
	if strings.HasPrefix(s, "::") {
		return TypeName{External: s}, true
	}
	mod, name, ok := strings.Cut(s, "::")
	if !ok || name == "" || strings.Contains(name, "::") {
		return TypeName{}, false
	}
	c, ok := categoryOf(mod)
	if !ok {
		return TypeName{}, false
	}
	return TypeName{Category: c, Name: name}, true
}

// BaseCategory is the base definition a generated type extends.
type BaseCategory string

// Base categories emitted with every generation run.
const (
	BaseObject     BaseCategory = "Types::BaseObject"
	BaseObjectNoID BaseCategory = "Types::BaseObjectNoId"
	BaseEnum       BaseCategory = "Types::BaseEnum"
	BaseScalar     BaseCategory = "Types::BaseScalar"
	BaseUnion      BaseCategory = "Types::BaseUnion"
	BaseInterface  BaseCategory = "Interfaces::BaseInterface"
	BaseInput      BaseCategory = "Inputs::BaseInput"
	BasePayload    BaseCategory = "Payloads::BasePayload"
)

// IsBaseCategory reports whether s names a known base category.
func IsBaseCategory(s string) bool {
	for _, b := range baseDefs {
		if string(b.base) == s {
			return true
		}
	}
	return false
}

// IsModule reports whether the base is a Ruby module rather than a class.
func (b BaseCategory) IsModule() bool { return b == BaseInterface }

// baseOf derives the base category of a type.
func baseOf(c Category, kind load.Kind) BaseCategory {
	if c == CategoryPayload {
		return BasePayload
	}
	switch kind {
	case ast.Enum:
		return BaseEnum
	case ast.Scalar:
		return BaseScalar
	case ast.InputObject:
		return BaseInput
	case ast.Interface:
		return BaseInterface
	case ast.Union:
		return BaseUnion
	default:
		return BaseObject
	}
}

var (
	inputSuffix      = regexp.MustCompile(`Input(V\d+)?$`)
	payloadSuffix    = regexp.MustCompile(`Payload(V\d+)?$`)
	skippedName      = regexp.MustCompile(`^__|(?:Connection|Edge)$`)
	connectionSuffix = "Connection"
)

// nameOf applies the category rule to a schema type.
func nameOf(t load.Type) TypeName {
	name := t.TypeName()
	n := TypeName{Category: CategoryType, Name: name}
	switch {
	case t.Kind() == ast.Interface:
		n = TypeName{Category: CategoryInterface, Name: strings.TrimSuffix(name, "Interface")}
	case t.Kind() == ast.InputObject || inputSuffix.MatchString(name):
		n = TypeName{Category: CategoryInput, Name: inputSuffix.ReplaceAllString(name, "$1")}
	case payloadSuffix.MatchString(name):
		n = TypeName{Category: CategoryPayload, Name: payloadSuffix.ReplaceAllString(name, "$1")}
	default:
		n.Name = strings.TrimSuffix(name, connectionSuffix)
	}
	if n.Name == "" {
		n.Name = name
	}
	return n
}

// rules is the inflection ruleset used for Ruby identifiers and file names.
var rules = ruleset()

func ruleset() *inflect.Ruleset {
	rs := inflect.NewDefaultRuleset()
	for _, w := range []string{"UUID", "API", "HTML", "ID", "ISO", "JSON", "SEO", "SKU", "URL"} {
		rs.AddAcronym(w)
	}
	return rs
}

// underscore converts a GraphQL name to a Ruby identifier.
func underscore(s string) string { return rules.Underscore(s) }
