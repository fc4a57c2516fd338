// Package load decodes GraphQL introspection documents into the typed
// schema model consumed by the generator.
package load

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/vektah/gqlparser/v2/ast"
)

// Schema represents an introspection schema that was loaded from a JSON document.
type Schema struct {
	// Query, Mutation and Subscription hold the names of the entry point types.
	// Subscription is always empty for a successfully loaded schema.
	Query        string
	Mutation     string
	Subscription string
	Directives   []*Directive
	// Types holds every type of the document in document order.
	Types []Type
}

// Replacement is a literal text substitution applied to the raw
// document before it is decoded.
type Replacement struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

// Option configures the loader.
type Option func(*loader)

// WithReplacements sets the substitutions applied, in order, to the raw
// document text.
func WithReplacements(r ...Replacement) Option {
	return func(l *loader) {
		l.replace = append(l.replace, r...)
	}
}

type loader struct {
	replace []Replacement
}

// Top-level keys of the __schema object.
const (
	keyQuery        = "queryType"
	keyMutation     = "mutationType"
	keySubscription = "subscriptionType"
	keyDirectives   = "directives"
	keyTypes        = "types"
)

var knownKeys = []string{keyQuery, keyMutation, keySubscription, keyDirectives, keyTypes}

// ParseFile reads and parses the introspection document at path.
func ParseFile(path string, opts ...Option) (*Schema, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return Parse(buf, opts...)
}

// Parse decodes an introspection document. The document may be a full
// response ({"data": {"__schema": ...}}), a {"__schema": ...} object, or
// the bare schema object.
func Parse(buf []byte, opts ...Option) (*Schema, error) {
	l := &loader{}
	for _, opt := range opts {
		opt(l)
	}
	for _, r := range l.replace {
		if r.Old != "" {
			buf = bytes.ReplaceAll(buf, []byte(r.Old), []byte(r.New))
		}
	}
	top, err := unwrap(buf)
	if err != nil {
		return nil, err
	}
	var unknown []string
	for k := range top {
		if !slices.Contains(knownKeys, k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, NewSchemaError(unknown[0], "", "unrecognized schema element; the generator needs to be updated to support it", nil)
	}
	s := &Schema{}
	if s.Query, err = entryPoint(top, keyQuery); err != nil {
		return nil, err
	}
	if s.Mutation, err = entryPoint(top, keyMutation); err != nil {
		return nil, err
	}
	if s.Subscription, err = entryPoint(top, keySubscription); err != nil {
		return nil, err
	}
	if raw, ok := top[keyDirectives]; ok {
		if err := json.Unmarshal(raw, &s.Directives); err != nil {
			return nil, NewSchemaError(keyDirectives, "", "decode directives", err)
		}
	}
	if raw, ok := top[keyTypes]; ok {
		if s.Types, err = decodeTypes(raw); err != nil {
			return nil, err
		}
	}
	switch {
	case s.Query == "":
		return nil, NewSchemaError(keyQuery, "", "did not find name of query entry point", nil)
	case s.Mutation == "":
		return nil, NewSchemaError(keyMutation, "", "did not find name of mutation entry point", nil)
	case s.Subscription != "":
		return nil, NewSchemaError(keySubscription, s.Subscription, "subscription entry points are not supported", nil)
	}
	return s, nil
}

// UnsupportedDirectives returns the names of the non-deprecated directives
// for which builtin returns false, in document order.
func (s *Schema) UnsupportedDirectives(builtin func(string) bool) []string {
	var names []string
	for _, d := range s.Directives {
		if d.IsDeprecated || builtin(d.Name) {
			continue
		}
		names = append(names, d.Name)
	}
	return names
}

// unwrap returns the top-level members of the __schema object. A GraphQL
// response is unwrapped through its data member; its other members are
// ignored unless it reports errors.
func unwrap(buf []byte) (map[string]json.RawMessage, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(buf, &top); err != nil {
		return nil, NewSchemaError("", "", "decode document", err)
	}
	if raw, ok := top["data"]; ok {
		if err := responseErrors(top["errors"]); err != nil {
			return nil, err
		}
		var data map[string]json.RawMessage
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, NewSchemaError("data", "", "decode response data", err)
		}
		top = data
	}
	if raw, ok := top["__schema"]; ok {
		top = nil
		if err := json.Unmarshal(raw, &top); err != nil {
			return nil, NewSchemaError("__schema", "", "decode schema", err)
		}
	}
	if top == nil {
		return nil, NewSchemaError("__schema", "", "schema is null", nil)
	}
	return top, nil
}

// responseErrors fails if the errors member of a response is not empty.
func responseErrors(raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	var errs []struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &errs); err != nil {
		return NewSchemaError("errors", "", "decode response errors", err)
	}
	if len(errs) == 0 {
		return nil
	}
	return NewSchemaError("errors", "", "introspection query failed: "+errs[0].Message, nil)
}

// entryPoint returns the type name of an entry point member, or "" if the
// member is absent or null.
func entryPoint(top map[string]json.RawMessage, key string) (string, error) {
	raw, ok := top[key]
	if !ok {
		return "", nil
	}
	var ref *struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &ref); err != nil {
		return "", NewSchemaError(key, "", "decode entry point", err)
	}
	if ref == nil {
		return "", nil
	}
	return ref.Name, nil
}

// rawType mirrors a type record of the introspection JSON.
type rawType struct {
	Kind          string        `json:"kind"`
	Name          string        `json:"name"`
	Description   *string       `json:"description"`
	IsDeprecated  bool          `json:"isDeprecated"`
	Fields        []*Field      `json:"fields"`
	InputFields   []*InputValue `json:"inputFields"`
	Interfaces    []*TypeRef    `json:"interfaces"`
	PossibleTypes []*TypeRef    `json:"possibleTypes"`
	EnumValues    []*EnumValue  `json:"enumValues"`
}

func decodeTypes(raw json.RawMessage) ([]Type, error) {
	var records []*rawType
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, NewSchemaError(keyTypes, "", "decode types", err)
	}
	types := make([]Type, 0, len(records))
	for _, r := range records {
		t, err := r.variant()
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// variant converts the record into its kind-specific representation.
func (r *rawType) variant() (Type, error) {
	if r.Name == "" {
		return nil, NewSchemaError(keyTypes, "", fmt.Sprintf("type of kind %q has no name", r.Kind), nil)
	}
	h := Header{Name: r.Name, Description: r.Description, IsDeprecated: r.IsDeprecated}
	switch Kind(r.Kind) {
	case ast.Scalar:
		return &Scalar{Header: h}, nil
	case ast.Object:
		if len(r.InputFields) > 0 {
			return nil, NewSchemaError(keyTypes, r.Name, "object type has input fields", nil)
		}
		return &Object{Header: h, Fields: r.Fields, Interfaces: r.Interfaces}, nil
	case ast.Interface:
		if len(r.InputFields) > 0 {
			return nil, NewSchemaError(keyTypes, r.Name, "interface type has input fields", nil)
		}
		return &Interface{Header: h, Fields: r.Fields, Interfaces: r.Interfaces}, nil
	case ast.Union:
		return &Union{Header: h, PossibleTypes: r.PossibleTypes}, nil
	case ast.Enum:
		return &Enum{Header: h, Values: r.EnumValues}, nil
	case ast.InputObject:
		if len(r.Fields) > 0 {
			return nil, NewSchemaError(keyTypes, r.Name, "input object type has output fields", nil)
		}
		return &InputObject{Header: h, InputFields: r.InputFields}, nil
	default:
		return nil, NewSchemaError(keyTypes, r.Name, fmt.Sprintf("unknown type kind %q", r.Kind), nil)
	}
}
