package ast

// Visit calls fn for v and every Value reachable from it (array elements,
// inline table entries, env() defaults, native constructor arguments,
// include paths). When fn returns false for a node, that node's children are
// skipped; the walk goes on with the rest of the tree.
func (v *Value) Visit(fn func(*Value) bool) {
	if v == nil {
		return
	}
	if !fn(v) {
		return
	}
	for _, e := range v.Elements {
		e.Visit(fn)
	}
	for _, e := range v.Entries {
		e.Value.Visit(fn)
	}
	v.EnvDefault.Visit(fn)
	v.NativeArg.Visit(fn)
	v.IncludePath.Visit(fn)
}

// Visit calls fn for every Item in the document, in source order.
func (d *Document) Visit(fn func(*Item) bool) {
	for _, it := range d.Items {
		if !fn(it) {
			return
		}
	}
}
