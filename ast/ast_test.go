package ast

import "testing"

func TestKeyString(t *testing.T) {
	k := Key{Segments: []KeySegment{{Name: "server", Raw: "server"}, {Name: "port", Raw: "port"}}}
	if got := k.String(); got != "server.port" {
		t.Errorf("got %q, want %q", got, "server.port")
	}
}

func TestDocumentFind(t *testing.T) {
	kv := &Item{Kind: KeyValueItem, Key: Key{Segments: []KeySegment{{Name: "port"}}}, Value: &Value{Kind: IntegerValue, Int: 8080}}
	doc := NewDocument([]byte("port = 8080\n"), []*Item{kv})
	if got := doc.Find("port"); got != kv {
		t.Errorf("Find(port) = %v, want %v", got, kv)
	}
	if got := doc.Find("missing"); got != nil {
		t.Errorf("Find(missing) = %v, want nil", got)
	}
}

func TestValueCloneIsIndependent(t *testing.T) {
	orig := &Value{Kind: ArrayValue, Elements: []*Value{{Kind: IntegerValue, Int: 1}}}
	clone := orig.Clone()
	clone.Elements[0].Int = 99
	if orig.Elements[0].Int != 1 {
		t.Errorf("cloning mutated original: got %d, want 1", orig.Elements[0].Int)
	}
}

func TestValueVisitCountsNested(t *testing.T) {
	v := &Value{
		Kind: ArrayValue,
		Elements: []*Value{
			{Kind: IntegerValue, Int: 1},
			{Kind: EnvValue, EnvKey: "HOME", EnvDefault: &Value{Kind: StringValue, Str: "/root"}},
		},
	}
	n := 0
	v.Visit(func(*Value) bool { n++; return true })
	if n != 4 { // array + int + env + default
		t.Errorf("visited %d nodes, want 4", n)
	}
}

func TestItemCloneDeepCopiesKey(t *testing.T) {
	it := &Item{Kind: TableHeaderItem, Key: Key{Segments: []KeySegment{{Name: "a"}}}}
	clone := it.Clone()
	clone.Key.Segments[0].Name = "b"
	if it.Key.Segments[0].Name != "a" {
		t.Errorf("cloning mutated original key")
	}
}
