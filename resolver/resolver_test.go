package resolver

import (
	"strings"
	"testing"

	"github.com/noml-lang/noml/internal/loader"
	"github.com/noml-lang/noml/parser"
)

func TestResolveEnvWithDefault(t *testing.T) {
	doc, err := parser.Parse([]byte(`name = env("NOML_TEST_MISSING", "fallback")`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg := DefaultConfig()
	cfg.Getenv = func(string) (string, bool) { return "", false }
	root, err := Resolve(doc, cfg)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	v, ok := root.Get("name")
	if !ok {
		t.Fatal("expected name to be set")
	}
	s, _ := v.AsString()
	if s != "fallback" {
		t.Fatalf("got %q, want fallback", s)
	}
}

func TestResolveEnvMissingNoDefault(t *testing.T) {
	doc, err := parser.Parse([]byte(`name = env("NOML_TEST_MISSING")`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg := DefaultConfig()
	cfg.Getenv = func(string) (string, bool) { return "", false }
	_, err = Resolve(doc, cfg)
	if err == nil {
		t.Fatal("expected an error for a missing env var with no default")
	}
	rerr, ok := err.(*Error)
	if !ok || rerr.Kind != "MissingEnv" {
		t.Fatalf("got %v, want a MissingEnv *Error", err)
	}
}

func TestResolveEnvPresent(t *testing.T) {
	doc, err := parser.Parse([]byte(`name = env("NOML_TEST_PRESENT")`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg := DefaultConfig()
	cfg.Getenv = func(k string) (string, bool) {
		if k == "NOML_TEST_PRESENT" {
			return "bob", true
		}
		return "", false
	}
	root, err := Resolve(doc, cfg)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	v, _ := root.Get("name")
	s, _ := v.AsString()
	if s != "bob" {
		t.Fatalf("got %q, want bob", s)
	}
}

func TestResolveInterpolationForwardReferenceFails(t *testing.T) {
	doc, err := parser.Parse([]byte("msg = \"hi ${name}\"\nname = \"bob\"\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = Resolve(doc, DefaultConfig())
	if err == nil {
		t.Fatal("expected a forward-reference interpolation failure")
	}
	rerr, ok := err.(*Error)
	if !ok || rerr.Kind != "InterpolationMissingPath" {
		t.Fatalf("got %v, want InterpolationMissingPath", err)
	}
}

func TestResolveInterpolationSucceedsInOrder(t *testing.T) {
	doc, err := parser.Parse([]byte("name = \"bob\"\nmsg = \"hi ${name}\"\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	root, err := Resolve(doc, DefaultConfig())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	v, _ := root.Get("msg")
	s, _ := v.AsString()
	if s != "hi bob" {
		t.Fatalf("got %q, want %q", s, "hi bob")
	}
}

func TestResolveSizeNative(t *testing.T) {
	doc, err := parser.Parse([]byte(`limit = @size("10MB")`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	root, err := Resolve(doc, DefaultConfig())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	v, _ := root.Get("limit")
	inner, ok := v.NativeValue()
	if !ok {
		t.Fatal("expected a native value")
	}
	n, _ := inner.AsInteger()
	if n != 10*1<<20 {
		t.Fatalf("got %d bytes, want %d", n, 10*1<<20)
	}
}

func TestResolveDurationNativeMultiUnit(t *testing.T) {
	doc, err := parser.Parse([]byte(`timeout = @duration("1h30m")`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	root, err := Resolve(doc, DefaultConfig())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	v, _ := root.Get("timeout")
	inner, _ := v.NativeValue()
	f, _ := inner.AsFloat()
	if f != 5400 {
		t.Fatalf("got %v seconds, want 5400", f)
	}
}

func TestResolveURLNativeRejectsMissingHost(t *testing.T) {
	doc, err := parser.Parse([]byte(`endpoint = @url("not-a-url")`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = Resolve(doc, DefaultConfig())
	if err == nil {
		t.Fatal("expected a NativeBadForm error")
	}
	rerr, ok := err.(*Error)
	if !ok || rerr.Kind != "NativeBadForm" {
		t.Fatalf("got %v, want NativeBadForm", err)
	}
}

func TestResolveUUIDNative(t *testing.T) {
	doc, err := parser.Parse([]byte(`id = @uuid("123e4567-e89b-12d3-a456-426614174000")`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	root, err := Resolve(doc, DefaultConfig())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	v, _ := root.Get("id")
	inner, _ := v.NativeValue()
	s, _ := inner.AsString()
	if s != "123e4567-e89b-12d3-a456-426614174000" {
		t.Fatalf("got %q", s)
	}
}

func TestResolveArrayOfTables(t *testing.T) {
	src := "[[server]]\nhost = \"a\"\n[[server]]\nhost = \"b\"\n"
	doc, err := parser.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	root, err := Resolve(doc, DefaultConfig())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	servers, _ := root.Get("server")
	elems, ok := servers.AsArray()
	if !ok || len(elems) != 2 {
		t.Fatalf("got %v elements, want 2", elems)
	}
	h0, _ := elems[0].Get("host")
	h1, _ := elems[1].Get("host")
	s0, _ := h0.AsString()
	s1, _ := h1.AsString()
	if s0 != "a" || s1 != "b" {
		t.Fatalf("got hosts %q, %q", s0, s1)
	}
}

func TestResolveIncludeMerges(t *testing.T) {
	parent := `include "child.noml"` + "\n"
	child := `greeting = "hi"` + "\n"

	doc, err := parser.Parse([]byte(parent))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg := DefaultConfig()
	cfg.Loader = loader.MapLoader{"child.noml": []byte(child)}
	root, err := Resolve(doc, cfg)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	v, ok := root.Get("greeting")
	if !ok {
		t.Fatal("expected greeting to be merged in from the include")
	}
	s, _ := v.AsString()
	if s != "hi" {
		t.Fatalf("got %q, want hi", s)
	}
}

func TestResolveIncludeConflictingKeyIsError(t *testing.T) {
	parent := "x = 1\n" + `include "child.noml"` + "\n"
	child := `x = 2` + "\n"

	doc, err := parser.Parse([]byte(parent))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg := DefaultConfig()
	cfg.Loader = loader.MapLoader{"child.noml": []byte(child)}
	_, err = Resolve(doc, cfg)
	if err == nil {
		t.Fatal("expected an error merging an include that redeclares an outer key")
	}
	rerr, ok := err.(*Error)
	if !ok || rerr.Kind != "DuplicateKey" {
		t.Fatalf("got %v, want DuplicateKey", err)
	}
}

func TestResolveIncludeRelativeToBasePathDirectory(t *testing.T) {
	parent := `include "child.noml"` + "\n"
	child := `greeting = "hi"` + "\n"

	doc, err := parser.Parse([]byte(parent))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg := DefaultConfig()
	cfg.BasePath = "/etc/app"
	cfg.Loader = loader.MapLoader{"/etc/app/child.noml": []byte(child)}
	root, err := Resolve(doc, cfg)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, ok := root.Get("greeting"); !ok {
		t.Fatal("expected include relative to BasePath itself, not its parent directory")
	}
}

func TestResolveIncludeCycleDetected(t *testing.T) {
	a := `include "b.noml"` + "\n"
	b := `include "a.noml"` + "\n"

	doc, err := parser.Parse([]byte(a))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg := DefaultConfig()
	cfg.BasePath = "."
	cfg.Loader = loader.MapLoader{
		"b.noml": []byte(b),
		"a.noml": []byte(a),
	}
	_, err = Resolve(doc, cfg)
	if err == nil {
		t.Fatal("expected an include cycle error")
	}
	rerr, ok := err.(*Error)
	if !ok || rerr.Kind != "IncludeCycle" {
		t.Fatalf("got %v, want IncludeCycle", err)
	}
	if !strings.Contains(rerr.Context, "a.noml") {
		t.Fatalf("expected cycle message to name a.noml: %v", rerr.Context)
	}
}

func TestResolveDistinctNestedKeysAreNotDuplicates(t *testing.T) {
	doc, err := parser.Parse([]byte("[a]\nx = 1\n[a.b]\nx = 2\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := Resolve(doc, DefaultConfig()); err != nil {
		t.Fatalf("unexpected error for distinct nested keys: %v", err)
	}
}
