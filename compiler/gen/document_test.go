package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument(t *testing.T) {
	var d Document
	d.Append(Fields, "field :a", "field :b")
	d.Append(Postamble, "end")
	d.Append(Header, "class A")
	d.Append(Includes, "")
	d.Unshift(Preamble, "class B; end")
	d.Unshift(Preamble, "class C; end")

	assert.Equal(t, "class C; end\nclass B; end\nclass A\nfield :a\nfield :b\nend", d.String())
	assert.True(t, d.Contains(Preamble, "class B; end"))
	assert.False(t, d.Contains(Header, "class B; end"))
	assert.Equal(t, []string{"field :a", "field :b"}, d.Fragments(Fields))
	assert.Empty(t, d.Fragments(Interfaces))
}

func TestSection_String(t *testing.T) {
	assert.Equal(t, "preamble", Preamble.String())
	assert.Equal(t, "possible_types", PossibleTypes.String())
	assert.Equal(t, "postamble", Postamble.String())
	assert.Equal(t, "unknown", numSections.String())
}

func TestArtifact(t *testing.T) {
	tests := []struct {
		a        Artifact
		name     string
		editable bool
	}{
		{ArtifactSchema, "schema", false},
		{ArtifactImplementation, "implementation", true},
		{ArtifactTest, "test", true},
		{ArtifactManifest, "manifest", false},
		{ArtifactSDL, "sdl", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.a.String())
			assert.Equal(t, tt.editable, tt.a.Editable())
		})
	}
}

func TestIndent(t *testing.T) {
	tests := []struct {
		name  string
		level int
		in    string
		want  string
	}{
		{"empty", 2, "", ""},
		{"single line", 1, "end", "  end"},
		{"trailing newline", 1, "a\nb\n", "  a\n  b"},
		{"blank lines", 2, "a\n\n  \nb", "    a\n\n\n    b"},
		{"leading newline", 1, "\na", "\n  a"},
		{"zero level", 0, "a\n", "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, indent(tt.level, tt.in))
		})
	}
}

func TestRubyDoc(t *testing.T) {
	s := "The shop's name."
	assert.Equal(t, "nil", rubyDoc(nil))
	assert.Equal(t, "%q{The shop's name.}", rubyDoc(&s))
}

func TestOneline(t *testing.T) {
	s := "\nFirst line.\nSecond line. \n"
	assert.Equal(t, "First line. Second line.", oneline(&s))
	assert.Equal(t, "", oneline(nil))
}

func TestLineCount(t *testing.T) {
	assert.Equal(t, 0, lineCount(""))
	assert.Equal(t, 1, lineCount("a"))
	assert.Equal(t, 1, lineCount("a\n"))
	assert.Equal(t, 3, lineCount("a\nb\nc"))
}

func TestUnderscore(t *testing.T) {
	tests := map[string]string{
		"sortKey":         "sort_key",
		"primaryDomain":   "primary_domain",
		"ProductSortKeys": "product_sort_keys",
		"lineItems":       "line_items",
		"id":              "id",
	}
	for in, want := range tests {
		assert.Equal(t, want, underscore(in), in)
	}
}
