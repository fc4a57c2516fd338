package gen

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/gqlscaffold/compiler/builtin"
	"github.com/syssam/gqlscaffold/compiler/load"
)

func object(name string, fields ...*load.Field) *load.Object {
	return &load.Object{Header: load.Header{Name: name}, Fields: fields}
}

func field(name string, ref *load.TypeRef) *load.Field {
	return &load.Field{Name: name, Type: ref}
}

func obj(name string) *load.TypeRef    { return load.Named(ast.Object, name) }
func scalar(name string) *load.TypeRef { return load.Named(ast.Scalar, name) }

func testConfig(t *testing.T, opts ...Option) *Config {
	t.Helper()
	opts = append([]Option{
		WithTarget(t.TempDir()),
		WithLogger(slog.New(slog.DiscardHandler)),
	}, opts...)
	c, err := NewConfig(opts...)
	require.NoError(t, err)
	return c
}

// newGraph returns a graph over the given types, with Query and Mutation
// as entry points and the graphql-ruby built-ins.
func newGraph(t *testing.T, c *Config, types ...load.Type) *Graph {
	t.Helper()
	if c == nil {
		c = testConfig(t)
	}
	reg, err := builtin.Default(c.Log())
	require.NoError(t, err)
	s := &load.Schema{Query: "Query", Mutation: "Mutation", Types: types}
	g, err := NewGraph(c, s, reg)
	require.NoError(t, err)
	return g
}

// shopGraph returns a graph over testdata/shop.json.
func shopGraph(t *testing.T, opts ...Option) *Graph {
	t.Helper()
	s, err := load.ParseFile(filepath.Join("testdata", "shop.json"))
	require.NoError(t, err)
	c := testConfig(t, opts...)
	reg, err := builtin.Default(c.Log())
	require.NoError(t, err)
	g, err := NewGraph(c, s, reg)
	require.NoError(t, err)
	return g
}

func TestNewGraph(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewGraph(nil, &load.Schema{}, nil)
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("nil schema", func(t *testing.T) {
		_, err := NewGraph(testConfig(t), nil, nil)
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("nil registry has no built-ins", func(t *testing.T) {
		g, err := NewGraph(testConfig(t), &load.Schema{Types: []load.Type{&load.Scalar{Header: load.Header{Name: "String"}}}}, nil)
		require.NoError(t, err)
		require.NoError(t, g.Classify())
		n, ok := g.NameOf("String")
		require.True(t, ok)
		assert.Equal(t, "Types::String", n.String())
	})
}

func TestClassify_CategoryAndBase(t *testing.T) {
	tests := []struct {
		name     string
		typ      load.Type
		category Category
		bare     string
		base     BaseCategory
	}{
		{"input object", &load.InputObject{Header: load.Header{Name: "CheckoutInput"}}, CategoryInput, "Checkout", BaseInput},
		{"versioned input", &load.InputObject{Header: load.Header{Name: "CustomerUpdateInputV2"}}, CategoryInput, "CustomerUpdateV2", BaseInput},
		{"input object without suffix", &load.InputObject{Header: load.Header{Name: "MailingAddress"}}, CategoryInput, "MailingAddress", BaseInput},
		{"interface", &load.Interface{Header: load.Header{Name: "Node"}}, CategoryInterface, "Node", BaseInterface},
		{"interface suffix", &load.Interface{Header: load.Header{Name: "DisplayableInterface"}}, CategoryInterface, "Displayable", BaseInterface},
		{"payload", object("CheckoutCreatePayload"), CategoryPayload, "CheckoutCreate", BasePayload},
		{"versioned payload", object("CheckoutCompletePayloadV2"), CategoryPayload, "CheckoutCompleteV2", BasePayload},
		{"scalar named like an input", &load.Scalar{Header: load.Header{Name: "PriceInput"}}, CategoryInput, "Price", BaseScalar},
		{"object", object("Shop"), CategoryType, "Shop", BaseObject},
		{"enum", &load.Enum{Header: load.Header{Name: "CurrencyCode"}}, CategoryType, "CurrencyCode", BaseEnum},
		{"scalar", &load.Scalar{Header: load.Header{Name: "Money"}}, CategoryType, "Money", BaseScalar},
		{"union", &load.Union{Header: load.Header{Name: "SearchResult"}}, CategoryType, "SearchResult", BaseUnion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGraph(t, nil, tt.typ)
			require.NoError(t, g.Classify())
			require.Len(t, g.Nodes, 1)
			n := g.Nodes[0]
			assert.Equal(t, tt.category, n.Name.Category)
			assert.Equal(t, tt.bare, n.Name.Name)
			assert.Equal(t, tt.base, n.Base)
		})
	}
}

func TestClassify_Skip(t *testing.T) {
	deprecated := object("LegacyShop")
	deprecated.IsDeprecated = true
	g := newGraph(t, nil,
		object("Widget", field("name", scalar("String"))),
		object("WidgetConnection"),
		object("WidgetEdge"),
		object("__Type"),
		deprecated,
		&load.Scalar{Header: load.Header{Name: "String"}},
	)
	require.NoError(t, g.Classify())
	require.Len(t, g.Nodes, 1)
	assert.Equal(t, "Types::Widget", g.Nodes[0].Name.String())

	for _, name := range []string{"WidgetConnection", "WidgetEdge", "__Type", "LegacyShop"} {
		_, ok := g.NameOf(name)
		assert.False(t, ok, name)
	}
	n, ok := g.NameOf("String")
	require.True(t, ok)
	assert.True(t, n.IsExternal())
	assert.Equal(t, "::GraphQL::Types::String", n.String())
	assert.True(t, g.IsBuiltin("String"))
}

func TestClassify_Idempotent(t *testing.T) {
	g := shopGraph(t)
	require.NoError(t, g.Classify())
	snapshot := func() map[string]string {
		m := make(map[string]string)
		for _, n := range g.Nodes {
			m[n.Type.TypeName()] = n.Name.String() + " < " + string(n.Base)
		}
		return m
	}
	first := snapshot()
	require.NoError(t, g.Classify())
	assert.Equal(t, first, snapshot())
	assert.Len(t, g.Nodes, 15)
}

func TestClassify_Collision(t *testing.T) {
	t.Run("rename onto existing type", func(t *testing.T) {
		c := testConfig(t, WithTypeNames(map[string]string{"Gadget": "Types::Widget"}))
		g := newGraph(t, c, object("Widget"), object("Gadget"))
		err := g.Classify()
		require.Error(t, err)
		assert.True(t, IsNameCollision(err))

		var collision *NameCollisionError
		require.ErrorAs(t, err, &collision)
		assert.Equal(t, "Types::Widget", collision.Name)
		assert.Equal(t, "Widget", collision.Existing)
		assert.Equal(t, "Gadget", collision.Type)
	})

	t.Run("suffix stripping", func(t *testing.T) {
		g := newGraph(t, nil,
			&load.InputObject{Header: load.Header{Name: "Address"}},
			&load.InputObject{Header: load.Header{Name: "AddressInput"}},
		)
		err := g.Classify()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNameCollision)
	})

	t.Run("base definition name", func(t *testing.T) {
		g := newGraph(t, nil, object("BaseObject"))
		assert.True(t, IsNameCollision(g.Classify()))
	})

	t.Run("root file paths", func(t *testing.T) {
		tests := []struct {
			name     string
			existing string
		}{
			{"Schema", "(root schema definition)"},
			{"FileList", "(file list manifest)"},
		}
		for _, tt := range tests {
			g := newGraph(t, nil, object(tt.name))
			var collision *NameCollisionError
			require.ErrorAs(t, g.Classify(), &collision)
			assert.Equal(t, "Types::"+tt.name, collision.Name)
			assert.Equal(t, tt.existing, collision.Existing)
		}
	})

	t.Run("root file paths under a category directory", func(t *testing.T) {
		g := newGraph(t, nil, &load.Interface{Header: load.Header{Name: "Schema"}})
		assert.NoError(t, g.Classify())
	})
}

func TestClassify_ManualNames(t *testing.T) {
	c := testConfig(t, WithTypeNames(map[string]string{
		"String": "::Spree::Types::Text",
		"Money":  "::Spree::Types::Money",
		"Shop":   "Types::Store",
	}))
	g := newGraph(t, c,
		&load.Scalar{Header: load.Header{Name: "String"}},
		&load.Scalar{Header: load.Header{Name: "Money"}},
		object("Shop", field("name", scalar("String"))),
	)
	require.NoError(t, g.Classify())
	require.Len(t, g.Nodes, 1)
	assert.Equal(t, "Types::Store", g.Nodes[0].Name.String())
	assert.Equal(t, "store", g.Nodes[0].Name.Path())

	n, _ := g.NameOf("String")
	assert.Equal(t, "::Spree::Types::Text", n.String(), "manual mapping wins over built-in")
	assert.True(t, g.IsBuiltin("Money"))

	t.Run("invalid output name", func(t *testing.T) {
		c := testConfig(t, WithTypeNames(map[string]string{"Shop": "Stores::Shop"}))
		g := newGraph(t, c, object("Shop"))
		assert.True(t, IsConfigError(g.Classify()))
	})
}

func TestClassify_Directives(t *testing.T) {
	g := shopGraph(t)
	require.NoError(t, g.Classify())
	assert.Equal(t, []string{"accessRestricted"}, g.Problems.Directives)
	assert.False(t, g.Problems.Empty())
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		in   string
		str  string
		path string
	}{
		{"Types::ProductSortKeys", "Types::ProductSortKeys", "product_sort_keys"},
		{"Interfaces::Node", "Interfaces::Node", "interfaces/node"},
		{"Inputs::CheckoutLineItem", "Inputs::CheckoutLineItem", "inputs/checkout_line_item"},
		{"Payloads::CheckoutCreate", "Payloads::CheckoutCreate", "payloads/checkout_create"},
		{"Types::BaseObjectNoId", "Types::BaseObjectNoId", "base_object_no_id"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n, ok := ParseTypeName(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.str, n.String())
			assert.Equal(t, tt.path, n.Path())
		})
	}

	for _, bad := range []string{"Shop", "Things::Shop", "Types::", "Types::A::B"} {
		_, ok := ParseTypeName(bad)
		assert.False(t, ok, bad)
	}

	n, ok := ParseTypeName("::Money")
	require.True(t, ok)
	assert.True(t, n.IsExternal())
}

func TestCategory(t *testing.T) {
	assert.Equal(t, "Interface", CategoryInterface.String())
	assert.Equal(t, "Payloads", CategoryPayload.Module())
	assert.Equal(t, "", CategoryType.Dir())
	assert.Equal(t, "inputs", CategoryInput.Dir())
	assert.True(t, CategoryType.Editable())
	assert.True(t, CategoryInterface.Editable())
	assert.False(t, CategoryInput.Editable())
	assert.False(t, CategoryPayload.Editable())
}
