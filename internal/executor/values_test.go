package executor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCoerceValue(t *testing.T) {
	cases := []struct {
		name    string
		value   any
		typ     string
		want    any
		wantErr bool
	}{
		{"int", 3, "Int", 3, false},
		{"int64", int64(3), "Int", 3, false},
		{"integral float", float64(3), "Int", 3, false},
		{"fractional float", 3.5, "Int", nil, true},
		{"int overflow", int64(1) << 40, "Int", nil, true},
		{"string as int", "3", "Int", nil, true},
		{"int as float", 2, "Float", 2.0, false},
		{"string", "x", "String", "x", false},
		{"int as string", 1, "String", nil, true},
		{"bool", true, "Boolean", true, false},
		{"int as bool", 1, "Boolean", nil, true},
		{"id from int", 7, "ID", "7", false},
		{"id from string", "a7", "ID", "a7", false},
		{"enum passthrough", "RED", "Color", "RED", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := coerceValue(tc.value, named(tc.typ))
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestCoerceValue_Wrappers(t *testing.T) {
	_, err := coerceValue(nil, nonNull(named("Int")))
	require.Error(t, err)

	got, err := coerceValue(nil, named("Int"))
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = coerceValue([]any{1, float64(2)}, list(nonNull(named("Int"))))
	require.NoError(t, err)
	require.Equal(t, []any{1, 2}, got)

	got, err = coerceValue(5, list(named("Int")))
	require.NoError(t, err)
	require.Equal(t, []any{5}, got)

	_, err = coerceValue([]any{1, nil}, list(nonNull(named("Int"))))
	require.Error(t, err)
}

func TestCoerceArgumentValues(t *testing.T) {
	f := field("f", named("String"),
		arg("b", nonNull(named("Int"))),
		arg("a", named("String")).SetDefault("dflt"),
		arg("c", named("Boolean")),
	)

	got, err := coerceArgumentValues(f, map[string]any{"b": float64(1)})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"a": "dflt", "b": 1}, got)

	_, err = coerceArgumentValues(f, map[string]any{"a": "x"})
	require.ErrorContains(t, err, `"b"`)

	_, err = coerceArgumentValues(f, map[string]any{"b": 1, "zz": 1, "yy": 2})
	require.ErrorContains(t, err, `"yy"`, "unknown arguments are reported in name order")
}

func TestPathString(t *testing.T) {
	require.Equal(t, "", Path{}.String())
	require.Equal(t, "author", Path{"author"}.String())
	require.Equal(t, "author.books[1].name", Path{"author", "books", 1, "name"}.String())
	require.Equal(t, "[0].a", Path{0, "a"}.String())
}
