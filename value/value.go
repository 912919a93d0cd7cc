// Package value implements the resolved Value tree: the tagged union a
// Document's dynamic expressions (env lookups, includes, interpolations,
// native constructors) collapse into once the resolver has run. Unlike
// package ast, a Value tree carries no source spans or formatting — it is
// the plain data a caller actually wants to read.
package value

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the tag of a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Integer
	Float
	String
	Array
	Table
	DateTime
	Native
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	case Array:
		return "array"
	case Table:
		return "table"
	case DateTime:
		return "datetime"
	case Native:
		return "native"
	default:
		return "<unknown kind>"
	}
}

// Value is a tagged union over NOML's resolved value space. A zero Value is
// Null. Table preserves declaration order: entries are visited and
// serialized in the order keys were first inserted.
type Value struct {
	kind Kind

	boolv  bool
	intv   int64
	floatv float64
	strv   string
	timev  time.Time
	arr    []*Value

	table *orderedTable

	nativeName string
	nativeVal  *Value
}

// orderedTable is an insertion-ordered string->*Value map.
type orderedTable struct {
	keys   []string
	byKey  map[string]int
	values []*Value
}

func newOrderedTable() *orderedTable {
	return &orderedTable{byKey: make(map[string]int)}
}

func (t *orderedTable) get(k string) (*Value, bool) {
	i, ok := t.byKey[k]
	if !ok {
		return nil, false
	}
	return t.values[i], true
}

func (t *orderedTable) set(k string, v *Value) {
	if i, ok := t.byKey[k]; ok {
		t.values[i] = v
		return
	}
	t.byKey[k] = len(t.keys)
	t.keys = append(t.keys, k)
	t.values = append(t.values, v)
}

func (t *orderedTable) remove(k string) (*Value, bool) {
	i, ok := t.byKey[k]
	if !ok {
		return nil, false
	}
	v := t.values[i]
	t.keys = append(t.keys[:i], t.keys[i+1:]...)
	t.values = append(t.values[:i], t.values[i+1:]...)
	delete(t.byKey, k)
	for j := i; j < len(t.keys); j++ {
		t.byKey[t.keys[j]] = j
	}
	return v, true
}

func (t *orderedTable) clone() *orderedTable {
	c := newOrderedTable()
	for i, k := range t.keys {
		c.set(k, t.values[i].DeepClone())
	}
	return c
}

// Constructors.

func NewNull() *Value                { return &Value{kind: Null} }
func NewBool(b bool) *Value          { return &Value{kind: Bool, boolv: b} }
func NewInteger(i int64) *Value      { return &Value{kind: Integer, intv: i} }
func NewFloat(f float64) *Value      { return &Value{kind: Float, floatv: f} }
func NewString(s string) *Value      { return &Value{kind: String, strv: s} }
func NewDateTime(t time.Time) *Value { return &Value{kind: DateTime, timev: t} }

func NewArray(elems ...*Value) *Value {
	return &Value{kind: Array, arr: elems}
}

func NewTable() *Value {
	return &Value{kind: Table, table: newOrderedTable()}
}

// NewNative wraps the concrete Value a native constructor resolved to,
// remembering the constructor's name (e.g. "size", "uuid") for diagnostics.
// Rendering (ToJSONString, String, serialize.RenderLiteral) uses only the
// wrapped value, not the name.
func NewNative(name string, v *Value) *Value {
	return &Value{kind: Native, nativeName: name, nativeVal: v}
}

// Kind reports v's tag.
func (v *Value) Kind() Kind { return v.kind }

// TypeName returns the lowercase type name used in diagnostics, unwrapping
// Native to its underlying kind's name (so @size(...) reports "integer").
func (v *Value) TypeName() string {
	if v.kind == Native {
		return v.nativeVal.TypeName()
	}
	return v.kind.String()
}

func (v *Value) IsNull() bool     { return v.kind == Null }
func (v *Value) IsBool() bool     { return v.kind == Bool }
func (v *Value) IsInteger() bool  { return v.kind == Integer }
func (v *Value) IsFloat() bool    { return v.kind == Float }
func (v *Value) IsNumber() bool   { return v.kind == Integer || v.kind == Float }
func (v *Value) IsString() bool   { return v.kind == String }
func (v *Value) IsArray() bool    { return v.kind == Array }
func (v *Value) IsTable() bool    { return v.kind == Table }
func (v *Value) IsDateTime() bool { return v.kind == DateTime }
func (v *Value) IsNative() bool   { return v.kind == Native }

// AsBool, AsInteger, etc. unwrap Native transparently: a @size(...) value
// answers AsInteger the same way a plain integer literal would.
func (v *Value) AsBool() (bool, bool) {
	if v.kind == Native {
		return v.nativeVal.AsBool()
	}
	return v.boolv, v.kind == Bool
}

func (v *Value) AsInteger() (int64, bool) {
	if v.kind == Native {
		return v.nativeVal.AsInteger()
	}
	return v.intv, v.kind == Integer
}

func (v *Value) AsFloat() (float64, bool) {
	if v.kind == Native {
		return v.nativeVal.AsFloat()
	}
	if v.kind == Integer {
		return float64(v.intv), true
	}
	return v.floatv, v.kind == Float
}

func (v *Value) AsString() (string, bool) {
	if v.kind == Native {
		return v.nativeVal.AsString()
	}
	return v.strv, v.kind == String
}

func (v *Value) AsDateTime() (time.Time, bool) {
	if v.kind == Native {
		return v.nativeVal.AsDateTime()
	}
	return v.timev, v.kind == DateTime
}

func (v *Value) AsArray() ([]*Value, bool) {
	if v.kind == Native {
		return v.nativeVal.AsArray()
	}
	if v.kind != Array {
		return nil, false
	}
	return v.arr, true
}

// AppendElement appends e to v, which must be an Array.
func (v *Value) AppendElement(e *Value) error {
	if v.kind != Array {
		return fmt.Errorf("value: cannot append to a %s", v.kind)
	}
	v.arr = append(v.arr, e)
	return nil
}

// NativeName returns the constructor name for a Native value and true, or
// ("", false) for any other kind.
func (v *Value) NativeName() (string, bool) {
	if v.kind != Native {
		return "", false
	}
	return v.nativeName, true
}

// NativeValue returns the underlying resolved Value a Native value wraps.
func (v *Value) NativeValue() (*Value, bool) {
	if v.kind != Native {
		return nil, false
	}
	return v.nativeVal, true
}

// Get retrieves the value at a dotted path from a table, descending through
// nested tables. It returns (nil, false) if any segment is missing or a
// non-final segment is not a table.
func (v *Value) Get(path string) (*Value, bool) {
	cur := v
	for _, seg := range strings.Split(path, ".") {
		if cur.kind != Table {
			return nil, false
		}
		next, ok := cur.table.get(seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Set stores val at a dotted path, creating intermediate tables as needed.
// v must itself be a Table. It is an error if an intermediate segment
// already names a non-table value.
func (v *Value) Set(path string, val *Value) error {
	segs := strings.Split(path, ".")
	if len(segs) == 0 || segs[0] == "" {
		return fmt.Errorf("value: empty path")
	}
	if v.kind != Table {
		return fmt.Errorf("value: cannot set path on a %s", v.kind)
	}
	cur := v
	for _, seg := range segs[:len(segs)-1] {
		next, ok := cur.table.get(seg)
		if !ok {
			next = NewTable()
			cur.table.set(seg, next)
		}
		if next.kind != Table {
			return fmt.Errorf("value: cannot descend into %q: existing value is a %s, not a table", seg, next.kind)
		}
		cur = next
	}
	cur.table.set(segs[len(segs)-1], val)
	return nil
}

// Remove deletes the value at a dotted path and returns it, or (nil, false)
// if the path does not resolve to an existing entry in a table.
func (v *Value) Remove(path string) (*Value, bool) {
	segs := strings.Split(path, ".")
	if len(segs) == 0 || v.kind != Table {
		return nil, false
	}
	cur := v
	for _, seg := range segs[:len(segs)-1] {
		next, ok := cur.table.get(seg)
		if !ok || next.kind != Table {
			return nil, false
		}
		cur = next
	}
	return cur.table.remove(segs[len(segs)-1])
}

// Contains reports whether path resolves to an entry.
func (v *Value) Contains(path string) bool {
	_, ok := v.Get(path)
	return ok
}

// Keys returns a table's direct (non-recursive) keys, in declaration order.
// It returns nil for a non-table value.
func (v *Value) Keys() []string {
	if v.kind != Table {
		return nil
	}
	return append([]string(nil), v.table.keys...)
}

// KeysRecursive returns every dotted path reachable from v, parent paths
// before children, in declaration order.
func (v *Value) KeysRecursive() []string {
	var keys []string
	v.collectKeys("", &keys)
	return keys
}

func (v *Value) collectKeys(prefix string, keys *[]string) {
	if v.kind != Table {
		return
	}
	for i, k := range v.table.keys {
		full := k
		if prefix != "" {
			full = prefix + "." + k
		}
		*keys = append(*keys, full)
		v.table.values[i].collectKeys(full, keys)
	}
}

// Entries iterates a table's key/value pairs in declaration order.
func (v *Value) Entries() []TableEntry {
	if v.kind != Table {
		return nil
	}
	out := make([]TableEntry, len(v.table.keys))
	for i, k := range v.table.keys {
		out[i] = TableEntry{Key: k, Value: v.table.values[i]}
	}
	return out
}

// TableEntry is one key/value pair returned by Entries.
type TableEntry struct {
	Key   string
	Value *Value
}

// MergeConflictError reports a key present on both sides of a Merge that is
// not itself mergeable (both sides tables); it is the only case Merge
// refuses, since an unconditional overwrite would silently let an included
// document shadow a key the outer document already declared.
type MergeConflictError struct {
	Key string
}

func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("value: key %q already exists and the two values are not both tables", e.Key)
}

// Merge merges other into v, which must both be tables: keys present in
// both that are themselves tables are merged recursively; any other key
// already present in v is a MergeConflictError, and keys absent from v are
// added from other.
func (v *Value) Merge(other *Value) error {
	if v.kind != Table || other.kind != Table {
		return fmt.Errorf("value: merge requires two tables, got %s and %s", v.kind, other.kind)
	}
	for i, k := range other.table.keys {
		incoming := other.table.values[i]
		if existing, ok := v.table.get(k); ok {
			if existing.kind == Table && incoming.kind == Table {
				if err := existing.Merge(incoming); err != nil {
					return err
				}
				continue
			}
			return &MergeConflictError{Key: k}
		}
		v.table.set(k, incoming)
	}
	return nil
}

// DeepClone returns a value with no shared mutable state with v.
func (v *Value) DeepClone() *Value {
	c := &Value{kind: v.kind, boolv: v.boolv, intv: v.intv, floatv: v.floatv, strv: v.strv, timev: v.timev, nativeName: v.nativeName}
	if v.arr != nil {
		c.arr = make([]*Value, len(v.arr))
		for i, e := range v.arr {
			c.arr[i] = e.DeepClone()
		}
	}
	if v.table != nil {
		c.table = v.table.clone()
	}
	if v.nativeVal != nil {
		c.nativeVal = v.nativeVal.DeepClone()
	}
	return c
}

// ToJSONString renders v as a compact JSON-like string. Native values
// render as their underlying resolved value.
func (v *Value) ToJSONString() string {
	var b strings.Builder
	v.writeJSON(&b)
	return b.String()
}

func (v *Value) writeJSON(b *strings.Builder) {
	switch v.kind {
	case Null:
		b.WriteString("null")
	case Bool:
		b.WriteString(strconv.FormatBool(v.boolv))
	case Integer:
		b.WriteString(strconv.FormatInt(v.intv, 10))
	case Float:
		b.WriteString(strconv.FormatFloat(v.floatv, 'g', -1, 64))
	case String:
		b.WriteString(strconv.Quote(v.strv))
	case DateTime:
		b.WriteString(strconv.Quote(v.timev.Format(time.RFC3339Nano)))
	case Array:
		b.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				b.WriteString(", ")
			}
			e.writeJSON(b)
		}
		b.WriteByte(']')
	case Table:
		b.WriteByte('{')
		for i, k := range v.table.keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Quote(k))
			b.WriteString(": ")
			v.table.values[i].writeJSON(b)
		}
		b.WriteByte('}')
	case Native:
		v.nativeVal.writeJSON(b)
	}
}

func (v *Value) String() string {
	switch v.kind {
	case Null:
		return "null"
	case Bool:
		return strconv.FormatBool(v.boolv)
	case Integer:
		return strconv.FormatInt(v.intv, 10)
	case Float:
		return strconv.FormatFloat(v.floatv, 'g', -1, 64)
	case String:
		return v.strv
	case DateTime:
		return v.timev.Format(time.RFC3339Nano)
	case Array:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Table:
		parts := make([]string, len(v.table.keys))
		for i, k := range v.table.keys {
			parts[i] = fmt.Sprintf("%s = %s", k, v.table.values[i])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case Native:
		return v.nativeVal.String()
	default:
		return "<invalid value>"
	}
}
