package recipe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_Objects(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want map[string]any
	}{
		{
			name: "fenced with json tag",
			in:   "```json\n{\"recipe_name\":\"Tea\"}\n```",
			want: map[string]any{"recipe_name": "Tea"},
		},
		{
			name: "fenced without tag",
			in:   "```\n{\"recipe_name\":\"Tea\"}\n```",
			want: map[string]any{"recipe_name": "Tea"},
		},
		{
			name: "fenced with upper case tag",
			in:   "```JSON {\"recipe_name\":\"Tea\"} ```",
			want: map[string]any{"recipe_name": "Tea"},
		},
		{
			name: "fence padded with no-break spaces",
			in:   "```json\u00a0{\"recipe_name\":\"Tea\"}\u00a0\u3000```",
			want: map[string]any{"recipe_name": "Tea"},
		},
		{
			name: "fence padded with byte order mark",
			in:   "```\ufeff\n{\"recipe_name\":\"Tea\"}\n\ufeff```",
			want: map[string]any{"recipe_name": "Tea"},
		},
		{
			name: "bare object",
			in:   `{"recipe_name":"Tea","serving_size":"2"}`,
			want: map[string]any{"recipe_name": "Tea", "serving_size": "2"},
		},
		{
			name: "bare object with surrounding whitespace",
			in:   "\n  {\"recipe_name\":\"Tea\"}  \n",
			want: map[string]any{"recipe_name": "Tea"},
		},
		{
			name: "empty object",
			in:   "{}",
			want: map[string]any{},
		},
		{
			name: "numbers are preserved",
			in:   `{"servings":4,"ratio":0.125}`,
			want: map[string]any{"servings": json.Number("4"), "ratio": json.Number("0.125")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_NoData(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"not json", "not json at all"},
		{"string", `"Tea"`},
		{"number", "42"},
		{"array", `[{"recipe_name":"Tea"}]`},
		{"null", "null"},
		{"boolean", "true"},
		{"fenced array", "```json\n[1,2]\n```"},
		{"fenced null", "```json\nnull\n```"},
		{"truncated object", `{"recipe_name":"Tea"`},
		{"trailing garbage", `{"recipe_name":"Tea"} and more`},
		{"two objects", `{"a":1}{"b":2}`},
		{"prose around fence", "Here you go:\n```json\n{\"recipe_name\":\"Tea\"}\n```"},
		{"unterminated fence", "```json\n{\"recipe_name\":\"Tea\"}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				got, ok := Extract(tt.in)
				assert.False(t, ok)
				assert.Nil(t, got)
			})
		})
	}
}

func TestExtract_ReencodesUnchanged(t *testing.T) {
	in := `{"recipe_name":"Pancakes","ingredients":[{"item":"flour","quantity":"200 g"},"2 eggs"],"method":["Mix","Fry"],"serving_size":4}`

	got, ok := Extract("```json\n" + in + "\n```")
	require.True(t, ok)

	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(b))
}
