package spec_test

import (
	"testing"

	"github.com/eak1mov/go-libworld/wld/spec"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseSchema(t *testing.T) {
	schema, err := spec.ParseSchema([]byte(`[
		{"name": "flag"},
		{"name": "count", "type": "i16", "min": 100},
		{"name": "names", "type": "s", "relnum": "count", "min": 100},
		{"name": "styles", "type": "u8", "num": 3, "max": 150}
	]`))
	require.NoError(t, err)

	want := spec.Schema{
		{Name: "flag", Type: spec.FieldBool, MinVersion: spec.MinimumVersion},
		{Name: "count", Type: spec.FieldInt16, MinVersion: 100},
		{Name: "names", Type: spec.FieldString, Array: true, LengthFrom: "count", MinVersion: 100},
		{Name: "styles", Type: spec.FieldByte, Array: true, Length: 3, MinVersion: spec.MinimumVersion, MaxVersion: 150},
	}
	if diff := cmp.Diff(want, schema); diff != "" {
		t.Errorf("ParseSchema mismatch (-want+got):\n%s", diff)
	}

	names := func(fields []spec.Field) []string {
		var out []string
		for _, f := range fields {
			out = append(out, f.Name)
		}
		return out
	}
	require.Equal(t, []string{"flag", "styles"}, names(schema.Fields(99)))
	require.Equal(t, []string{"flag", "count", "names", "styles"}, names(schema.Fields(150)))
	require.Equal(t, []string{"flag", "count", "names"}, names(schema.Fields(151)))
}

func TestParseSchemaErrors(t *testing.T) {
	for _, tc := range []struct {
		Name string
		Data string
	}{
		{Name: "Syntax", Data: `[{"name": }]`},
		{Name: "NotArray", Data: `{"name": "a"}`},
		{Name: "NoName", Data: `[{"type": "i32"}]`},
		{Name: "BadType", Data: `[{"name": "a", "type": "u64"}]`},
		{Name: "ArrayOfInt16", Data: `[{"name": "a", "type": "i16", "num": 2}]`},
		{Name: "ArrayOfFloat", Data: `[{"name": "a", "type": "f64", "num": 2}]`},
		{Name: "UndeclaredLength", Data: `[{"name": "a", "type": "i32", "relnum": "n"}]`},
		{Name: "ForwardLength", Data: `[{"name": "a", "type": "i32", "relnum": "n"}, {"name": "n", "type": "i32"}]`},
		{Name: "StringLength", Data: `[{"name": "n", "type": "s"}, {"name": "a", "type": "i32", "relnum": "n"}]`},
		{Name: "ArrayLength", Data: `[{"name": "n", "type": "i32", "num": 1}, {"name": "a", "type": "i32", "relnum": "n"}]`},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := spec.ParseSchema([]byte(tc.Data))
			require.ErrorIs(t, err, spec.ErrSchema)
		})
	}
}

func TestDefaultSchema(t *testing.T) {
	schema := spec.DefaultSchema()
	require.NotEmpty(t, schema)

	seen := make(map[string]bool)
	for _, f := range schema {
		require.Falsef(t, seen[f.Name], "duplicate field %s", f.Name)
		seen[f.Name] = true
	}
	for _, name := range []string{"name", "worldID", "tilesHigh", "tilesWide", "treeX", "treeStyle", "killCount"} {
		require.Truef(t, seen[name], "missing field %s", name)
	}
}
