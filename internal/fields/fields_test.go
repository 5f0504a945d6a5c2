package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
	"pgregory.net/rapid"

	"github.com/vk/connectgrid/internal/plugin"
)

func TestDerive_NilSchema(t *testing.T) {
	assert.Nil(t, Derive(nil))
}

func TestDerive_BasicShapes(t *testing.T) {
	obj := plugin.NewObject(
		plugin.F("a", plugin.String()),
		plugin.F("b", plugin.String().Optional()),
		plugin.F("c", plugin.Number().WithDefault(cty.NumberIntVal(5))),
		plugin.F("d", plugin.Enum("x", "y")),
	)

	got := Derive(obj)
	require.Len(t, got, 4)

	assert.Equal(t, []string{"a", "b", "c", "d"},
		[]string{got[0].Name, got[1].Name, got[2].Name, got[3].Name},
		"declaration order must be preserved")

	assert.True(t, got[0].Required)
	assert.False(t, got[1].Required)
	// A default without an optional wrapper still renders as required.
	assert.True(t, got[2].Required)
	assert.True(t, got[3].Required)

	assert.Nil(t, got[0].Default)
	assert.Nil(t, got[1].Default)
	assert.Equal(t, 5, got[2].Default)
	assert.Nil(t, got[3].Default)

	assert.Nil(t, got[0].Options)
	assert.Nil(t, got[1].Options)
	assert.Nil(t, got[2].Options)
	assert.Equal(t, []string{"x", "y"}, got[3].Options)
}

func TestDerive_TypeClassification(t *testing.T) {
	tests := []struct {
		name string
		node *plugin.Node
		want Type
	}{
		{"plain string", plugin.String(), TypeString},
		{"email format", plugin.Email(), TypeEmail},
		{"url format", plugin.URL(), TypeURL},
		{"number", plugin.Number(), TypeNumber},
		{"bool", plugin.Bool(), TypeBoolean},
		{"date", plugin.Date(), TypeDate},
		{"enum", plugin.Enum("a"), TypeEnum},
		{"array", plugin.Array(plugin.String()), TypeArray},
		{"object", plugin.ObjectOf(nil), TypeObject},
		{"any is unsupported", plugin.Any(), TypeUnsupported},
		{"wrapped email", plugin.Email().WithDefault(cty.StringVal("a@b.co")).Optional(), TypeEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Derive(plugin.NewObject(plugin.F("f", tt.node)))
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Type)
		})
	}
}

func TestDerive_NullableClearsRequired(t *testing.T) {
	got := Derive(plugin.NewObject(plugin.F("f", plugin.String().Nullable())))
	require.Len(t, got, 1)
	assert.False(t, got[0].Required)
}

func TestDerive_PlaceholderOuterWins(t *testing.T) {
	inner := plugin.String().Describe("inner")
	outer := inner.WithDefault(cty.StringVal("v")).Describe("outer")

	got := Derive(plugin.NewObject(
		plugin.F("wrapped", outer),
		plugin.F("base_only", plugin.String().Describe("base")),
		plugin.F("none", plugin.String()),
	))
	require.Len(t, got, 3)
	assert.Equal(t, "outer", got[0].Placeholder)
	assert.Equal(t, "base", got[1].Placeholder)
	assert.Empty(t, got[2].Placeholder)
}

func TestDerive_DefaultConversion(t *testing.T) {
	obj := plugin.NewObject(
		plugin.F("s", plugin.String().WithDefault(cty.StringVal("hi"))),
		plugin.F("f", plugin.Number().WithDefault(cty.NumberFloatVal(1.5))),
		plugin.F("b", plugin.Bool().WithDefault(cty.True)),
		plugin.F("l", plugin.Array(plugin.String()).WithDefault(cty.ListVal([]cty.Value{cty.StringVal("x")}))),
	)

	got := Derive(obj)
	require.Len(t, got, 4)
	assert.Equal(t, "hi", got[0].Default)
	assert.Equal(t, 1.5, got[1].Default)
	assert.Equal(t, true, got[2].Default)
	assert.Equal(t, []any{"x"}, got[3].Default)
}

// TestDerive_Properties checks structural invariants of the projection
// against randomly generated schemas.
func TestDerive_Properties(t *testing.T) {
	baseGen := rapid.SampledFrom([]func() *plugin.Node{
		plugin.String, plugin.Email, plugin.URL, plugin.Number,
		plugin.Bool, plugin.Date,
		func() *plugin.Node { return plugin.Enum("x", "y", "z") },
		func() *plugin.Node { return plugin.Array(plugin.String()) },
	})

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 8).Draw(t, "n")
		var objFields []plugin.Field
		var wantRequired []bool

		for i := 0; i < n; i++ {
			node := baseGen.Draw(t, "base")()

			if rapid.Bool().Draw(t, "hasDefault") && node.Kind == plugin.KindString {
				node = node.WithDefault(cty.StringVal("d"))
			}
			optional := rapid.Bool().Draw(t, "optional")
			if optional {
				node = node.Optional()
			}

			name := string(rune('a' + i))
			objFields = append(objFields, plugin.F(name, node))
			wantRequired = append(wantRequired, !optional)
		}

		got := Derive(plugin.NewObject(objFields...))
		if len(got) != n {
			t.Fatalf("expected %d fields, got %d", n, len(got))
		}
		for i, fd := range got {
			if fd.Name != objFields[i].Name {
				t.Fatalf("field %d: order not preserved: got %q want %q", i, fd.Name, objFields[i].Name)
			}
			if fd.Required != wantRequired[i] {
				t.Fatalf("field %q: required = %v, want %v", fd.Name, fd.Required, wantRequired[i])
			}
			base := objFields[i].Schema.Base()
			if (base.Kind == plugin.KindEnum) != (fd.Options != nil) {
				t.Fatalf("field %q: options populated iff enum violated", fd.Name)
			}
		}
	})
}
