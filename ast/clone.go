package ast

// Clone returns a deep copy of v; mutating the result never affects v.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	dst := new(Value)
	*dst = *v
	dst.Raw = append([]byte(nil), v.Raw...)
	dst.Elements = make([]*Value, len(v.Elements))
	for i, e := range v.Elements {
		dst.Elements[i] = e.Clone()
	}
	dst.Entries = make([]TableEntry, len(v.Entries))
	for i, e := range v.Entries {
		dst.Entries[i] = TableEntry{Key: Key{Segments: append([]KeySegment(nil), e.Key.Segments...)}, Value: e.Value.Clone()}
	}
	dst.EnvDefault = v.EnvDefault.Clone()
	dst.NativeArg = v.NativeArg.Clone()
	dst.IncludePath = v.IncludePath.Clone()
	return dst
}

// Clone returns a deep copy of it.
func (it *Item) Clone() *Item {
	if it == nil {
		return nil
	}
	dst := new(Item)
	*dst = *it
	dst.Value = it.Value.Clone()
	dst.IncludePath = it.IncludePath.Clone()
	dst.Key.Segments = append([]KeySegment(nil), it.Key.Segments...)
	dst.TrailingComment = append([]byte(nil), it.TrailingComment...)
	dst.Raw = append([]byte(nil), it.Raw...)
	return dst
}

// Clone returns a deep copy of d. The copy shares the original Source byte
// slice and SourceMap (both are immutable once built) but owns its own
// Items.
func (d *Document) Clone() *Document {
	items := make([]*Item, len(d.Items))
	for i, it := range d.Items {
		items[i] = it.Clone()
	}
	return &Document{Source: d.Source, SourceMap: d.SourceMap, Items: items}
}
