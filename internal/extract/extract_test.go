package extract

import (
	"context"
	"testing"

	"github.com/flytohub/flyto-indexer/internal/lang"
	"github.com/flytohub/flyto-indexer/internal/symbol"
)

func TestFilePythonFunction(t *testing.T) {
	src := []byte("def foo():\n    return bar()\n")
	res := File(context.Background(), "proj", "a.py", lang.Python, src)

	if res.File.Status == symbol.ParseError {
		t.Fatalf("unexpected parse_error")
	}
	if len(res.Symbols) != 1 {
		t.Fatalf("expected 1 symbol, got %d: %+v", len(res.Symbols), res.Symbols)
	}
	if res.Symbols[0].ID.Name != "foo" {
		t.Fatalf("expected symbol named foo, got %q", res.Symbols[0].ID.Name)
	}
	found := false
	for _, ref := range res.Symbols[0].RefsOut {
		if ref.Name == "bar" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected refs_out to contain bar, got %v", res.Symbols[0].RefsOut)
	}
}

func TestFilePythonRouteDecorator(t *testing.T) {
	src := []byte("@app.get(\"/api/users/{id}\")\ndef get_user(id):\n    return id\n")
	res := File(context.Background(), "backend", "routes.py", lang.Python, src)

	if len(res.File.DefinedRoutes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(res.File.DefinedRoutes))
	}
	route := res.File.DefinedRoutes[0]
	if route.Method != "GET" || route.PathPattern != "/api/users/{id}" {
		t.Fatalf("unexpected route: %+v", route)
	}
	if route.Framework != symbol.FrameworkFastAPI {
		t.Fatalf("expected fastapi framework, got %v", route.Framework)
	}
}

func TestFileGoMethodReceiver(t *testing.T) {
	src := []byte("package p\n\ntype T struct{}\n\nfunc (t T) Hello() string {\n\treturn \"hi\"\n}\n")
	res := File(context.Background(), "proj", "a.go", lang.Go, src)

	var foundMethod bool
	for _, s := range res.Symbols {
		if s.Kind == symbol.KindMethod && s.ID.Name == "T.Hello" {
			foundMethod = true
		}
	}
	if !foundMethod {
		t.Fatalf("expected method T.Hello, got %+v", res.Symbols)
	}
}

func TestFileJSCallSite(t *testing.T) {
	src := []byte("function loadUsers() {\n  return fetch(\"/api/users/42\");\n}\n")
	res := File(context.Background(), "frontend", "api.ts", lang.TypeScript, src)

	if len(res.File.OutboundCalls) != 1 {
		t.Fatalf("expected 1 call site, got %d", len(res.File.OutboundCalls))
	}
	if res.File.OutboundCalls[0].URLLiteral != "/api/users/42" {
		t.Fatalf("unexpected call site: %+v", res.File.OutboundCalls[0])
	}
}

func TestFileNonUTF8(t *testing.T) {
	src := []byte{0xff, 0xfe, 0x00}
	res := File(context.Background(), "proj", "bad.py", lang.Python, src)
	if res.File.Status != symbol.ParseError {
		t.Fatalf("expected parse_error status for non-utf8 content")
	}
	if len(res.Symbols) != 0 {
		t.Fatalf("expected zero symbols, got %d", len(res.Symbols))
	}
}

func TestExtractVueComponent(t *testing.T) {
	src := []byte(`<template><div/></template>
<script setup lang="ts">
const props = defineProps<{ id: number }>()
function load() {
  return fetch("/api/items")
}
</script>
`)
	res := extractVue(context.Background(), "proj", "Widget.vue", src)
	var componentFound bool
	for _, s := range res.Symbols {
		if s.Kind == symbol.KindComponent && s.ID.Name == "Widget" {
			componentFound = true
		}
	}
	if !componentFound {
		t.Fatalf("expected a component symbol named Widget, got %+v", res.Symbols)
	}
}
