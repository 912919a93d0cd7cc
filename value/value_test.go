package value

import "testing"

func TestTypeChecking(t *testing.T) {
	s := NewString("test")
	i := NewInteger(42)
	arr := NewArray(NewInteger(1), NewInteger(2))
	tbl := NewTable()

	if !s.IsString() || s.IsInteger() {
		t.Errorf("string value: IsString=%v IsInteger=%v", s.IsString(), s.IsInteger())
	}
	if !i.IsInteger() || !i.IsNumber() {
		t.Errorf("integer value: IsInteger=%v IsNumber=%v", i.IsInteger(), i.IsNumber())
	}
	if !arr.IsArray() {
		t.Errorf("array value: IsArray=%v", arr.IsArray())
	}
	if !tbl.IsTable() {
		t.Errorf("table value: IsTable=%v", tbl.IsTable())
	}
}

func TestTableOperations(t *testing.T) {
	table := NewTable()

	if err := table.Set("database.host", NewString("localhost")); err != nil {
		t.Fatal(err)
	}
	if err := table.Set("database.port", NewInteger(5432)); err != nil {
		t.Fatal(err)
	}
	if err := table.Set("server.port", NewInteger(8080)); err != nil {
		t.Fatal(err)
	}

	host, ok := table.Get("database.host")
	if !ok {
		t.Fatal("database.host missing")
	}
	if s, _ := host.AsString(); s != "localhost" {
		t.Errorf("got %q, want localhost", s)
	}

	port, ok := table.Get("database.port")
	if !ok {
		t.Fatal("database.port missing")
	}
	if n, _ := port.AsInteger(); n != 5432 {
		t.Errorf("got %d, want 5432", n)
	}

	if !table.Contains("database.host") {
		t.Error("expected contains(database.host)")
	}
	if !table.Contains("server") {
		t.Error("expected contains(server)")
	}
	if table.Contains("nonexistent") {
		t.Error("did not expect contains(nonexistent)")
	}

	removed, ok := table.Remove("database.host")
	if !ok || removed == nil {
		t.Fatal("expected to remove database.host")
	}
	if table.Contains("database.host") {
		t.Error("database.host still present after remove")
	}
}

func TestSetRejectsNonTableIntermediate(t *testing.T) {
	table := NewTable()
	if err := table.Set("a", NewInteger(1)); err != nil {
		t.Fatal(err)
	}
	if err := table.Set("a.b", NewInteger(2)); err == nil {
		t.Error("expected error descending through a non-table intermediate segment")
	}
}

func TestKeysRecursive(t *testing.T) {
	table := NewTable()
	table.Set("a", NewInteger(1))
	sub := NewTable()
	sub.Set("x", NewInteger(10))
	sub.Set("y", NewInteger(20))
	table.Set("b", sub)

	got := table.KeysRecursive()
	want := []string{"a", "b", "b.x", "b.y"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMerge(t *testing.T) {
	table1 := NewTable()
	table1.Set("a", NewInteger(1))
	b1 := NewTable()
	b1.Set("x", NewInteger(10))
	b1.Set("y", NewInteger(20))
	table1.Set("b", b1)

	table2 := NewTable()
	b2 := NewTable()
	b2.Set("z", NewInteger(30))
	table2.Set("b", b2)
	table2.Set("c", NewInteger(3))

	if err := table1.Merge(table2); err != nil {
		t.Fatal(err)
	}

	if v, _ := table1.Get("a"); mustInt(t, v) != 1 {
		t.Errorf("a = %v, want 1", v)
	}
	if v, _ := table1.Get("b.x"); mustInt(t, v) != 10 {
		t.Errorf("b.x = %v, want 10", v)
	}
	if v, _ := table1.Get("b.z"); mustInt(t, v) != 30 {
		t.Errorf("b.z = %v, want 30", v)
	}
	if v, _ := table1.Get("c"); mustInt(t, v) != 3 {
		t.Errorf("c = %v, want 3", v)
	}
}

func mustInt(t *testing.T, v *Value) int64 {
	t.Helper()
	n, ok := v.AsInteger()
	if !ok {
		t.Fatalf("%v is not an integer", v)
	}
	return n
}

func TestDeepCloneIsIndependent(t *testing.T) {
	orig := NewTable()
	orig.Set("arr", NewArray(NewInteger(1), NewInteger(2)))
	clone := orig.DeepClone()

	arr, _ := clone.Get("arr")
	elems, _ := arr.AsArray()
	elems[0] = NewInteger(99)

	origArr, _ := orig.Get("arr")
	origElems, _ := origArr.AsArray()
	if n, _ := origElems[0].AsInteger(); n != 1 {
		t.Errorf("deep clone mutation leaked into original: got %d, want 1", n)
	}
}

func TestNativeUnwrapsTransparently(t *testing.T) {
	n := NewNative("size", NewInteger(1048576))
	if !n.IsNative() {
		t.Fatal("expected IsNative")
	}
	if v, ok := n.AsInteger(); !ok || v != 1048576 {
		t.Errorf("AsInteger() = (%d, %v), want (1048576, true)", v, ok)
	}
	if n.TypeName() != "integer" {
		t.Errorf("TypeName() = %q, want integer", n.TypeName())
	}
}

func TestToJSONString(t *testing.T) {
	table := NewTable()
	table.Set("name", NewString("test"))
	table.Set("version", NewInteger(1))
	got := table.ToJSONString()
	want := `{"name": "test", "version": 1}`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
