//go:build cgo

package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartdocs/internal/model"
	"smartdocs/internal/syntax"
)

func extractSource(t *testing.T, lang model.Language, path, source string) []model.CodeEntity {
	t.Helper()

	tree, err := syntax.DefaultRegistry().Parse(context.Background(), []byte(source), lang, syntax.DialectForPath(path))
	require.NoError(t, err)
	defer tree.Close()

	return New().File(tree, lang, path)
}

func findEntity(t *testing.T, entities []model.CodeEntity, name string) model.CodeEntity {
	t.Helper()
	for _, e := range entities {
		if e.Name == name {
			return e
		}
	}
	t.Fatalf("entity %q not found in %+v", name, entities)
	return model.CodeEntity{}
}

func TestExtract_ExportedFunctionWithoutDoc(t *testing.T) {
	entities := extractSource(t, model.LangTypeScript, "a.ts", "export function foo() {}")

	require.Len(t, entities, 1)
	foo := entities[0]
	assert.Equal(t, "foo", foo.Name)
	assert.Equal(t, model.EntityFunction, foo.Type)
	assert.Equal(t, model.LangTypeScript, foo.Language)
	assert.True(t, foo.Exported)
	assert.False(t, foo.HasDoc)
}

func TestExtract_DocBlockBeforeFunction(t *testing.T) {
	entities := extractSource(t, model.LangTypeScript, "b.ts", "/** doc */\nfunction bar() {}")

	require.Len(t, entities, 1)
	assert.Equal(t, "bar", entities[0].Name)
	assert.True(t, entities[0].HasDoc)
	assert.False(t, entities[0].Exported)
}

func TestExtract_DocScan(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   bool
	}{
		{"doc block", "/** Adds. */\nfunction f() {}", true},
		{"doc block above line comments", "/** Adds. */\n// note\n// more\nfunction f() {}", true},
		{"line comments only", "// adds\nfunction f() {}", false},
		{"plain block comment", "/* adds */\nfunction f() {}", false},
		{"plain block between doc and node", "/** Adds. */\n/* eh */\nfunction f() {}", false},
		{"statement between", "/** Adds. */\nconst x = 1;\nfunction f() {}", false},
		{"no comment", "function f() {}", false},
		{"doc before export wrapper", "/** Adds. */\nexport function f() {}", true},
		{"doc before exported const arrow", "/** Adds. */\nexport const f = () => 1;", true},
		{"doc before const arrow", "/** Adds. */\nconst f = () => 1;", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entities := extractSource(t, model.LangTypeScript, "doc.ts", tt.source)
			f := findEntity(t, entities, "f")
			assert.Equal(t, tt.want, f.HasDoc)
		})
	}
}

func TestExtract_Exported(t *testing.T) {
	tests := []struct {
		name   string
		lang   model.Language
		source string
		want   bool
	}{
		{"plain function", model.LangJavaScript, "function f() {}", false},
		{"export function", model.LangJavaScript, "export function f() {}", true},
		{"export const arrow", model.LangTypeScript, "export const f = () => {};", true},
		{"module const arrow", model.LangTypeScript, "const f = () => {};", false},
		{"commonjs in initializer", model.LangJavaScript, "const f = () => module.exports.run();", true},
		{"exports member in initializer", model.LangJavaScript, "const f = function () { return exports.x; };", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entities := extractSource(t, tt.lang, "exp.js", tt.source)
			f := findEntity(t, entities, "f")
			assert.Equal(t, tt.want, f.Exported)
		})
	}
}

func TestExtract_ClassMembers(t *testing.T) {
	source := `export class Service {
  /** Runs the service. */
  run() {}

  stop() {}

  handler = () => {};
}

const helper = function () {};
`
	entities := extractSource(t, model.LangTypeScript, "svc.ts", source)

	names := make([]string, 0, len(entities))
	for _, e := range entities {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Service", "run", "stop", "handler", "helper"}, names)

	service := entities[0]
	assert.Equal(t, model.EntityClass, service.Type)
	assert.True(t, service.Exported)
	assert.False(t, service.HasDoc)

	run := findEntity(t, entities, "run")
	assert.Equal(t, model.EntityMethod, run.Type)
	assert.True(t, run.HasDoc)
	assert.True(t, run.Exported)

	stop := findEntity(t, entities, "stop")
	assert.Equal(t, model.EntityMethod, stop.Type)
	assert.False(t, stop.HasDoc)

	handler := findEntity(t, entities, "handler")
	assert.Equal(t, model.EntityMethod, handler.Type)

	helper := findEntity(t, entities, "helper")
	assert.Equal(t, model.EntityFunction, helper.Type)
	assert.False(t, helper.Exported)
}

func TestExtract_JavaScriptClassField(t *testing.T) {
	entities := extractSource(t, model.LangJavaScript, "w.js", "class W {\n  go = function () {};\n  size = 3;\n}\n")

	require.Len(t, entities, 2)
	assert.Equal(t, "W", entities[0].Name)
	assert.Equal(t, "go", entities[1].Name)
	assert.Equal(t, model.EntityMethod, entities[1].Type)
}

func TestExtract_TSXDialect(t *testing.T) {
	entities := extractSource(t, model.LangTypeScript, "App.tsx", "export const App = () => <div>hi</div>;\n")

	require.Len(t, entities, 1)
	assert.Equal(t, "App", entities[0].Name)
	assert.Equal(t, model.EntityFunction, entities[0].Type)
	assert.True(t, entities[0].Exported)
}

func TestExtract_Location(t *testing.T) {
	entities := extractSource(t, model.LangJavaScript, "src/a.js", "\n\nfunction foo() {}\n")

	require.Len(t, entities, 1)
	assert.Equal(t, model.CodeLocation{Line: 3, Column: 1}, entities[0].Location)
	assert.Equal(t, "src/a.js:3", entities[0].Summary)
	assert.Equal(t, 1, entities[0].ComplexityScore)
}

func TestExtract_Complexity(t *testing.T) {
	source := "function f(x) {\n  if (x) {\n    return 1;\n  }\n  return 0;\n}\n"
	entities := extractSource(t, model.LangJavaScript, "c.js", source)

	require.Len(t, entities, 1)
	assert.Equal(t, 6+3, entities[0].ComplexityScore)
}

func TestExtract_PythonClassAndMethod(t *testing.T) {
	entities := extractSource(t, model.LangPython, "foo.py", "class Foo:\n    def bar(self): pass\n")

	require.Len(t, entities, 2)

	foo := entities[0]
	assert.Equal(t, "Foo", foo.Name)
	assert.Equal(t, model.EntityClass, foo.Type)
	assert.True(t, foo.Exported)
	assert.False(t, foo.HasDoc)

	bar := entities[1]
	assert.Equal(t, "bar", bar.Name)
	assert.Equal(t, model.EntityMethod, bar.Type)
	assert.False(t, bar.Exported)
	assert.False(t, bar.HasDoc)
	assert.Equal(t, model.CodeLocation{Line: 2, Column: 5}, bar.Location)
}

func TestExtract_PythonDocstrings(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   bool
	}{
		{"docstring", "def f():\n    \"\"\"Adds.\"\"\"\n    return 1\n", true},
		{"single quoted docstring", "def f():\n    'Adds.'\n", true},
		{"no docstring", "def f():\n    return 1\n", false},
		{"string after statement", "def f():\n    x = 1\n    \"\"\"late\"\"\"\n", false},
		{"comment before docstring", "def f():\n    # note\n    \"\"\"Adds.\"\"\"\n    return 1\n", true},
		{"hash comment is not a docstring", "# Adds.\ndef f():\n    return 1\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entities := extractSource(t, model.LangPython, "doc.py", tt.source)
			f := findEntity(t, entities, "f")
			assert.Equal(t, tt.want, f.HasDoc)
		})
	}
}

func TestExtract_PythonVisibility(t *testing.T) {
	source := `def outer():
    def inner():
        pass
    return inner

@decorator
def wrapped():
    pass

class Box:
    @staticmethod
    def make():
        pass
`
	entities := extractSource(t, model.LangPython, "vis.py", source)

	assert.True(t, findEntity(t, entities, "outer").Exported)
	assert.False(t, findEntity(t, entities, "inner").Exported)
	assert.Equal(t, model.EntityFunction, findEntity(t, entities, "inner").Type)
	assert.True(t, findEntity(t, entities, "wrapped").Exported)

	factory := findEntity(t, entities, "make")
	assert.Equal(t, model.EntityMethod, factory.Type)
	assert.False(t, factory.Exported)
}

func TestExtract_EmptyFile(t *testing.T) {
	assert.Empty(t, extractSource(t, model.LangTypeScript, "empty.ts", ""))
	assert.Empty(t, extractSource(t, model.LangPython, "empty.py", "# only a comment\n"))
}

func TestExtract_Deterministic(t *testing.T) {
	source := "export class A {\n  b() {}\n}\nfunction c() { while (true) {} }\n"
	first := extractSource(t, model.LangTypeScript, "d.ts", source)
	second := extractSource(t, model.LangTypeScript, "d.ts", source)
	assert.Equal(t, first, second)
}

func TestExtract_UnknownLanguage(t *testing.T) {
	tree, err := syntax.DefaultRegistry().Parse(context.Background(), []byte("function f() {}"), model.LangJavaScript, syntax.DialectDefault)
	require.NoError(t, err)
	defer tree.Close()

	assert.Nil(t, New().File(tree, model.Language("cobol"), "x.cbl"))
}

func TestExtract_RegisterTable(t *testing.T) {
	tree, err := syntax.DefaultRegistry().Parse(context.Background(), []byte("class K:\n    pass\n"), model.LangPython, syntax.DialectDefault)
	require.NoError(t, err)
	defer tree.Close()

	e := New()
	e.Register(model.LangPython, Table{
		Rules:    pythonRules[1:],
		HasDoc:   pythonHasDoc,
		Exported: pythonExported,
	})

	entities := e.File(tree, model.LangPython, "k.py")
	require.Len(t, entities, 1)
	assert.Equal(t, model.EntityClass, entities[0].Type)
}
