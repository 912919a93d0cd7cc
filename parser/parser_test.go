package parser

import (
	"testing"

	"github.com/noml-lang/noml/ast"
)

func TestParseSimpleKeyValues(t *testing.T) {
	doc, err := Parse([]byte("a = 1\nb = \"x\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(doc.Items))
	}
	if doc.Items[0].Key.String() != "a" || doc.Items[0].Value.Int != 1 {
		t.Errorf("item 0 = %+v", doc.Items[0])
	}
	if doc.Items[1].Key.String() != "b" || doc.Items[1].Value.Str != "x" {
		t.Errorf("item 1 = %+v", doc.Items[1])
	}
}

func TestParseTableHeaderScopesKeys(t *testing.T) {
	doc, err := Parse([]byte("[server]\nport = 8080\n"))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Items[0].Kind != ast.TableHeaderItem || doc.Items[0].Key.String() != "server" {
		t.Fatalf("item 0 = %+v", doc.Items[0])
	}
	if doc.Items[1].Key.String() != "port" {
		t.Fatalf("item 1 key = %q, want port (local to scope)", doc.Items[1].Key.String())
	}
}

func TestParseArrayOfTables(t *testing.T) {
	doc, err := Parse([]byte("[[servers]]\nname = \"a\"\n[[servers]]\nname = \"b\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	var headers int
	for _, it := range doc.Items {
		if it.Kind == ast.ArrayTableHeaderItem {
			headers++
		}
	}
	if headers != 2 {
		t.Errorf("got %d array-table headers, want 2", headers)
	}
}

func TestParseRejectsRedeclaredTableHeader(t *testing.T) {
	_, err := Parse([]byte("[a]\nx = 1\n[a]\ny = 2\n"))
	if err == nil {
		t.Fatal("expected redeclaration error")
	}
}

func TestParseRejectsDuplicateKey(t *testing.T) {
	_, err := Parse([]byte("a = 1\na = 2\n"))
	if err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestParseAllowsExplicitAfterAutoCreated(t *testing.T) {
	doc, err := Parse([]byte("a.b.c = 1\n[a.b]\nd = 2\n"))
	if err != nil {
		t.Fatalf("expected auto-created ancestor to allow one explicit header: %v", err)
	}
	if len(doc.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(doc.Items))
	}
}

func TestParseEnvCall(t *testing.T) {
	doc, err := Parse([]byte(`port = env("PORT", 8080)` + "\n"))
	if err != nil {
		t.Fatal(err)
	}
	v := doc.Items[0].Value
	if v.Kind != ast.EnvValue || v.EnvKey != "PORT" {
		t.Fatalf("value = %+v", v)
	}
	if v.EnvDefault == nil || v.EnvDefault.Int != 8080 {
		t.Fatalf("default = %+v", v.EnvDefault)
	}
}

func TestParseNativeCall(t *testing.T) {
	doc, err := Parse([]byte(`size = @size("2KB")` + "\n"))
	if err != nil {
		t.Fatal(err)
	}
	v := doc.Items[0].Value
	if v.Kind != ast.NativeValue || v.NativeName != "size" || v.NativeArg.Str != "2KB" {
		t.Fatalf("value = %+v", v)
	}
}

func TestParseTopLevelInclude(t *testing.T) {
	doc, err := Parse([]byte(`include "shared.noml"` + "\n"))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Items[0].Kind != ast.IncludeItem || doc.Items[0].IncludePath.Str != "shared.noml" {
		t.Fatalf("item 0 = %+v", doc.Items[0])
	}
}

func TestParseArrayAndInlineTable(t *testing.T) {
	doc, err := Parse([]byte(`a = [1, 2, 3]` + "\n" + `b = { x = 1, y = 2 }` + "\n"))
	if err != nil {
		t.Fatal(err)
	}
	arr := doc.Items[0].Value
	if arr.Kind != ast.ArrayValue || len(arr.Elements) != 3 {
		t.Fatalf("array = %+v", arr)
	}
	tbl := doc.Items[1].Value
	if tbl.Kind != ast.InlineTableValue || len(tbl.Entries) != 2 {
		t.Fatalf("inline table = %+v", tbl)
	}
}

func TestParseCommentAndBlankItems(t *testing.T) {
	doc, err := Parse([]byte("# hdr\n\na = 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Items[0].Kind != ast.CommentItem {
		t.Fatalf("item 0 kind = %v, want CommentItem", doc.Items[0].Kind)
	}
	if doc.Items[1].Kind != ast.BlankItem {
		t.Fatalf("item 1 kind = %v, want BlankItem", doc.Items[1].Kind)
	}
}

func TestParseTrailingComment(t *testing.T) {
	doc, err := Parse([]byte("port = 8080 # inline\n"))
	if err != nil {
		t.Fatal(err)
	}
	if string(doc.Items[0].TrailingComment) != "# inline" {
		t.Errorf("trailing comment = %q", doc.Items[0].TrailingComment)
	}
}

func TestParseRoundTripCoversEveryByte(t *testing.T) {
	src := "# hdr\n[srv]  # inline\n  port = 8080\n"
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	var out []byte
	for _, it := range doc.Items {
		out = append(out, doc.Source[it.Span.Start:it.Span.End]...)
	}
	if string(out) != src {
		t.Errorf("got %q, want %q", out, src)
	}
}
