package serialize

import (
	"testing"

	"github.com/noml-lang/noml/parser"
	"github.com/noml-lang/noml/value"
)

func TestSerializeRoundTripIsIdentity(t *testing.T) {
	src := "# hdr\n[srv]  # inline\n  port = 8080\n"
	doc, err := parser.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := string(Serialize(doc)); got != src {
		t.Fatalf("got %q, want %q", got, src)
	}
}

func TestSetOnlyChangesTargetSpan(t *testing.T) {
	src := "# hdr\n[srv]  # inline\n  port = 8080\n"
	want := "# hdr\n[srv]  # inline\n  port = 9090\n"

	doc, err := parser.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	updated, err := Set(doc, "srv.port", value.NewInteger(9090))
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := string(Serialize(updated)); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSetRejectsUnknownPath(t *testing.T) {
	doc, err := parser.Parse([]byte("x = 1\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := Set(doc, "does.not.exist", value.NewInteger(1)); err == nil {
		t.Fatal("expected an error for a nonexistent path")
	}
}

func TestRemoveDropsKeyAndAttachedComment(t *testing.T) {
	src := "x = 1\n# about y\ny = 2\nz = 3\n"
	want := "x = 1\nz = 3\n"

	doc, err := parser.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	updated, err := Remove(doc, "y")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := string(Serialize(updated)); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestInsertAppendsAtEndOfScope(t *testing.T) {
	src := "[srv]\nhost = \"a\"\n"
	doc, err := parser.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	updated, err := Insert(doc, "srv", "port", value.NewInteger(9090))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	want := "[srv]\nhost = \"a\"\nport = 9090\n"
	if got := string(Serialize(updated)); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderLiteralArrayAndTable(t *testing.T) {
	arr := value.NewArray(value.NewInteger(1), value.NewInteger(2))
	got, err := RenderLiteral(arr)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(got) != "[1, 2]" {
		t.Fatalf("got %q", got)
	}

	tbl := value.NewTable()
	tbl.Set("a", value.NewInteger(1))
	tbl.Set("b c", value.NewString("x"))
	got, err = RenderLiteral(tbl)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(got) != `{a = 1, "b c" = "x"}` {
		t.Fatalf("got %q", got)
	}
}
