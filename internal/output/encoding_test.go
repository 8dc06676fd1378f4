package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inner struct {
	Name string `json:"name"`
	Line int    `json:"line"`
}

type outer struct {
	inner
	Severity string `json:"severity"`
}

type position struct {
	Line int `json:"line"`
}

type entity struct {
	Name     string   `json:"name"`
	Location position `json:"location"`
	hidden   int
}

type issue struct {
	entity
	Severity string `json:"severity"`
}

func TestDeterministicEncode(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		wantJSON string
	}{
		{
			name: "simple struct with floats",
			input: struct {
				Name  string  `json:"name"`
				Score float64 `json:"score"`
				Count int     `json:"count"`
			}{Name: "test", Score: 0.123456789, Count: 42},
			wantJSON: `{"count":42,"name":"test","score":0.123457}`,
		},
		{
			name: "nil pointer omitted",
			input: struct {
				Name  string   `json:"name"`
				Score *float64 `json:"score,omitempty"`
			}{Name: "test"},
			wantJSON: `{"name":"test"}`,
		},
		{
			name: "zero value with omitempty",
			input: struct {
				Name  string `json:"name"`
				Count int    `json:"count,omitempty"`
			}{Name: "test"},
			wantJSON: `{"name":"test"}`,
		},
		{
			name: "zero value without omitempty kept",
			input: struct {
				Count int  `json:"count"`
				Ok    bool `json:"ok"`
			}{},
			wantJSON: `{"count":0,"ok":false}`,
		},
		{
			name:     "map with sorted keys",
			input:    map[string]interface{}{"zebra": "last", "alpha": "first", "beta": "second"},
			wantJSON: `{"alpha":"first","beta":"second","zebra":"last"}`,
		},
		{
			name: "empty slice kept, nil slice omitted",
			input: struct {
				Empty []string `json:"empty"`
				Nil   []string `json:"nil"`
			}{Empty: []string{}},
			wantJSON: `{"empty":[]}`,
		},
		{
			name: "empty slice with omitempty dropped",
			input: struct {
				Targets []string `json:"targets,omitempty"`
			}{Targets: []string{}},
			wantJSON: `{}`,
		},
		{
			name:     "embedded struct flattened",
			input:    outer{inner: inner{Name: "f", Line: 3}, Severity: "low"},
			wantJSON: `{"line":3,"name":"f","severity":"low"}`,
		},
		{
			name:     "unexported embed with nested struct promoted",
			input:    issue{entity: entity{Name: "f", Location: position{Line: 3}, hidden: 7}, Severity: "low"},
			wantJSON: `{"location":{"line":3},"name":"f","severity":"low"}`,
		},
		{
			name:     "pointer to unexported embed owner",
			input:    &outer{inner: inner{Name: "g", Line: 1}},
			wantJSON: `{"line":1,"name":"g","severity":""}`,
		},
		{
			name:     "html not escaped",
			input:    map[string]string{"a": "<b>&"},
			wantJSON: `{"a":"<b>&"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeterministicEncode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantJSON, string(got))
		})
	}
}

func TestDeterministicEncode_Stable(t *testing.T) {
	input := map[string]interface{}{
		"z": []interface{}{map[string]int{"b": 2, "a": 1}},
		"a": 1.0,
		"m": map[string]float64{"y": 0.1, "x": 0.2},
	}

	first, err := DeterministicEncode(input)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := DeterministicEncode(input)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(first, again))
	}
}

func TestDeterministicEncodeIndented(t *testing.T) {
	got, err := DeterministicEncodeIndented(map[string]int{"b": 1, "a": 2}, "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 2,\n  \"b\": 1\n}", string(got))
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "12.5", FormatFloat(12.5))
	assert.Equal(t, "100", FormatFloat(100))
	assert.Equal(t, "0.333333", FormatFloat(1.0/3.0))
}

func TestDeterministicEncodeIndented_NoHTMLEscape(t *testing.T) {
	got, err := DeterministicEncodeIndented(map[string]string{"path": "<root>/a.ts"}, "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"path\": \"<root>/a.ts\"\n}", string(got))
}
