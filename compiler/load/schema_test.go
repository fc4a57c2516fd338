package load

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
)

const minimal = `{
	"queryType": {"name": "QueryRoot"},
	"mutationType": {"name": "Mutation"},
	"subscriptionType": null,
	"directives": [
		{"name": "include", "locations": ["FIELD"]},
		{"name": "accessRestricted", "locations": ["FIELD_DEFINITION"]},
		{"name": "old", "isDeprecated": true}
	],
	"types": [
		{"kind": "OBJECT", "name": "QueryRoot", "fields": [
			{"name": "shop", "type": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "OBJECT", "name": "Shop", "ofType": null}}}
		], "interfaces": []},
		{"kind": "OBJECT", "name": "Shop", "description": "A shop.", "fields": [
			{"name": "name", "type": {"kind": "SCALAR", "name": "String"}}
		]},
		{"kind": "SCALAR", "name": "String"},
		{"kind": "ENUM", "name": "Color", "enumValues": [{"name": "RED"}, {"name": "BLUE", "isDeprecated": true}]},
		{"kind": "INPUT_OBJECT", "name": "ShopInput", "inputFields": [{"name": "name", "type": {"kind": "SCALAR", "name": "String"}, "defaultValue": "\"x\""}]},
		{"kind": "UNION", "name": "Thing", "possibleTypes": [{"kind": "OBJECT", "name": "Shop"}]},
		{"kind": "INTERFACE", "name": "Node", "fields": []}
	]
}`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(minimal))
	require.NoError(t, err)
	assert.Equal(t, "QueryRoot", s.Query)
	assert.Equal(t, "Mutation", s.Mutation)
	assert.Empty(t, s.Subscription)
	require.Len(t, s.Types, 7)

	kinds := make([]Kind, 0, len(s.Types))
	for _, typ := range s.Types {
		kinds = append(kinds, typ.Kind())
	}
	assert.Equal(t, []Kind{ast.Object, ast.Object, ast.Scalar, ast.Enum, ast.InputObject, ast.Union, ast.Interface}, kinds)

	shop, ok := s.Types[1].(*Object)
	require.True(t, ok)
	require.NotNil(t, shop.Doc())
	assert.Equal(t, "A shop.", *shop.Doc())
	require.Len(t, shop.Fields, 1)

	enum := s.Types[3].(*Enum)
	require.Len(t, enum.Values, 2)
	assert.True(t, enum.Values[1].IsDeprecated)

	input := s.Types[4].(*InputObject)
	require.NotNil(t, input.InputFields[0].DefaultValue)
	assert.Equal(t, `"x"`, *input.InputFields[0].DefaultValue)
}

func TestParse_Envelope(t *testing.T) {
	for name, doc := range map[string]string{
		"response": `{"data": {"__schema": ` + minimal + `}}`,
		"response with extensions": `{"data": {"__schema": ` + minimal + `}, "extensions": {"cost": 1}}`,
		"response with empty errors": `{"errors": [], "data": {"__schema": ` + minimal + `}}`,
		"schema":   `{"__schema": ` + minimal + `}`,
		"bare":     minimal,
	} {
		t.Run(name, func(t *testing.T) {
			s, err := Parse([]byte(doc))
			require.NoError(t, err)
			assert.Equal(t, "QueryRoot", s.Query)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "unknown key",
			doc:  `{"queryType": {"name": "Q"}, "mutationType": {"name": "M"}, "extensions": {}}`,
			want: "extensions",
		},
		{
			name: "missing query",
			doc:  `{"mutationType": {"name": "M"}, "types": []}`,
			want: "query entry point",
		},
		{
			name: "null query",
			doc:  `{"queryType": null, "mutationType": {"name": "M"}}`,
			want: "query entry point",
		},
		{
			name: "missing mutation",
			doc:  `{"queryType": {"name": "Q"}, "types": []}`,
			want: "mutation entry point",
		},
		{
			name: "subscription",
			doc:  `{"queryType": {"name": "Q"}, "mutationType": {"name": "M"}, "subscriptionType": {"name": "S"}}`,
			want: "subscription entry points are not supported",
		},
		{
			name: "unknown kind",
			doc:  `{"queryType": {"name": "Q"}, "mutationType": {"name": "M"}, "types": [{"kind": "WAT", "name": "X"}]}`,
			want: `unknown type kind "WAT"`,
		},
		{
			name: "input object with fields",
			doc:  `{"queryType": {"name": "Q"}, "mutationType": {"name": "M"}, "types": [{"kind": "INPUT_OBJECT", "name": "X", "fields": [{"name": "a"}]}]}`,
			want: "input object type has output fields",
		},
		{
			name: "object with input fields",
			doc:  `{"queryType": {"name": "Q"}, "mutationType": {"name": "M"}, "types": [{"kind": "OBJECT", "name": "X", "inputFields": [{"name": "a"}]}]}`,
			want: "object type has input fields",
		},
		{
			name: "response errors",
			doc:  `{"data": null, "errors": [{"message": "introspection is disabled"}]}`,
			want: "introspection query failed: introspection is disabled",
		},
		{
			name: "null data",
			doc:  `{"data": null}`,
			want: "schema is null",
		},
		{
			name: "not json",
			doc:  `{`,
			want: "decode document",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.True(t, IsSchemaError(err))
			assert.True(t, errors.Is(err, ErrInvalidSchema))
		})
	}
}

func TestParse_Replacements(t *testing.T) {
	doc := `{"queryType": {"name": "QueryRoot"}, "mutationType": {"name": "Mutation"},
		"types": [{"kind": "OBJECT", "name": "Shop", "description": "Hosted by hopify.com", "fields": []}]}`
	s, err := Parse([]byte(doc), WithReplacements(
		Replacement{Old: "hopify.com", New: "olidus.io"},
		Replacement{Old: "hopify", New: "olidus"},
	))
	require.NoError(t, err)
	assert.Equal(t, "Hosted by olidus.io", *s.Types[0].Doc())
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(minimal), 0o644))
	s, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Mutation", s.Mutation)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestSchema_UnsupportedDirectives(t *testing.T) {
	s, err := Parse([]byte(minimal))
	require.NoError(t, err)
	got := s.UnsupportedDirectives(func(name string) bool { return name == "include" })
	assert.Equal(t, []string{"accessRestricted"}, got)
}

func TestTypeRef(t *testing.T) {
	foo := Named(ast.Object, "Foo")
	tests := []struct {
		ref    *TypeRef
		str    string
		length int
	}{
		{Named(ast.Object, "Foo"), "Foo", 1},
		{ListOf(Named(ast.Object, "Foo")), "[Foo]", 2},
		{NonNullOf(ListOf(NonNullOf(Named(ast.Object, "Foo")))), "[Foo!]!", 4},
	}
	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			assert.Equal(t, tt.str, tt.ref.String())
			chain, err := tt.ref.Chain()
			require.NoError(t, err)
			assert.Len(t, chain, tt.length)
			assert.Equal(t, "Foo", tt.ref.Leaf().TypeName())
		})
	}
	assert.False(t, foo.IsWrapper())
	assert.True(t, ListOf(foo).IsWrapper())
}

func TestTypeRef_ChainErrors(t *testing.T) {
	_, err := (&TypeRef{Kind: NonNull}).Chain()
	assert.Error(t, err)

	_, err = (&TypeRef{Kind: "OBJECT"}).Chain()
	assert.Error(t, err)

	name := "Foo"
	_, err = (&TypeRef{Kind: "OBJECT", Name: &name, OfType: Named(ast.Scalar, "String")}).Chain()
	assert.Error(t, err)
}
