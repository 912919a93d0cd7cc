// Package resolver evaluates a parsed ast.Document into a resolved
// value.Value tree: it performs environment lookups, file inclusion with
// cycle detection, string interpolation, and native-type coercion. It never
// mutates the Document it is given.
package resolver

import (
	"context"
	"fmt"

	"github.com/noml-lang/noml/ast"
	"github.com/noml-lang/noml/debug"
	"github.com/noml-lang/noml/internal/loader"
	"github.com/noml-lang/noml/value"
)

// Config controls the resolver's dynamic behaviors. The zero Config is not
// useful; start from DefaultConfig.
type Config struct {
	// BasePath is the directory relative includes resolve against.
	BasePath string

	AllowEnv        bool
	AllowIncludes   bool
	MaxIncludeDepth int
	Interpolation   bool
	StrictNative    bool

	Loader loader.SourceLoader

	// Getenv overrides the process environment lookup (os.LookupEnv) for
	// testing; nil uses the real process environment.
	Getenv func(string) (string, bool)
}

// DefaultConfig returns the resolver's documented defaults.
func DefaultConfig() Config {
	return Config{
		AllowEnv:        true,
		AllowIncludes:   true,
		MaxIncludeDepth: 32,
		Interpolation:   true,
		StrictNative:    true,
		Loader:          loader.NewFileLoader(),
	}
}

// resolveState carries per-resolution context: the config, the directory
// relative includes are currently resolved against, the include stack
// (canonical file paths actually included so far, for cycle detection; its
// length is the current include depth), and the context passed to the loader.
type resolveState struct {
	cfg          Config
	baseDir      string
	includeStack []string
	ctx          context.Context
}

// Resolve evaluates doc under cfg and returns its root Value, a Table.
func Resolve(doc *ast.Document, cfg Config) (*value.Value, error) {
	return ResolveContext(context.Background(), doc, cfg)
}

// ResolveContext is Resolve with an explicit context, honored by async
// include fetches (e.g. HTTPLoader).
func ResolveContext(ctx context.Context, doc *ast.Document, cfg Config) (*value.Value, error) {
	rs := &resolveState{cfg: cfg, ctx: ctx, baseDir: cfg.BasePath}
	root := value.NewTable()
	if err := rs.resolveItems(doc.Items, root); err != nil {
		return nil, err
	}
	if debug.Resolve() {
		debug.Logf("resolve: root = %v\n", root)
	}
	return root, nil
}

// resolveItems walks items in source order, threading a single current
// scope ("root" for un-headered items, or the table most recently opened by
// a table/array-of-tables header) so that interpolation's forward-pass
// ordering guarantee holds for free.
func (rs *resolveState) resolveItems(items []*ast.Item, root *value.Value) error {
	scope := root
	for _, it := range items {
		switch it.Kind {
		case ast.CommentItem, ast.BlankItem:
			continue

		case ast.TableHeaderItem:
			tbl, err := getOrCreateTable(root, namesOf(it.Key))
			if err != nil {
				return errTypeConflict(it.Span, err.Error())
			}
			scope = tbl

		case ast.ArrayTableHeaderItem:
			tbl, err := appendArrayTable(root, namesOf(it.Key))
			if err != nil {
				return errTypeConflict(it.Span, err.Error())
			}
			scope = tbl

		case ast.KeyValueItem:
			val, err := rs.resolveValue(it.Value, root)
			if err != nil {
				return err
			}
			path := it.Key.String()
			if scope.Contains(path) {
				return errDuplicateKey(it.Span, path)
			}
			if err := scope.Set(path, val); err != nil {
				return errTypeConflict(it.Span, err.Error())
			}

		case ast.IncludeItem:
			if !rs.cfg.AllowIncludes {
				return errf(it.Span, "IncludeIoFailed", "includes are disabled by resolver configuration")
			}
			included, err := rs.resolveInclude(it.IncludePath)
			if err != nil {
				return err
			}
			if err := scope.Merge(included); err != nil {
				if mc, ok := err.(*value.MergeConflictError); ok {
					return errDuplicateKey(it.Span, mc.Key)
				}
				return errTypeConflict(it.Span, err.Error())
			}
		}
	}
	return nil
}

// namesOf returns k's segment names. It is a small helper local to the
// resolver so package ast need not depend on path-joining helpers it has no
// other use for.
func namesOf(k ast.Key) []string {
	out := make([]string, len(k.Segments))
	for i, s := range k.Segments {
		out[i] = s.Name
	}
	return out
}

func getOrCreateTable(root *value.Value, segs []string) (*value.Value, error) {
	cur := root
	for _, seg := range segs {
		next, ok := cur.Get(seg)
		if !ok {
			next = value.NewTable()
			if err := cur.Set(seg, next); err != nil {
				return nil, err
			}
		} else if !next.IsTable() {
			return nil, fmt.Errorf("%q is not a table", seg)
		}
		cur = next
	}
	return cur, nil
}

func appendArrayTable(root *value.Value, segs []string) (*value.Value, error) {
	parent, err := getOrCreateTable(root, segs[:len(segs)-1])
	if err != nil {
		return nil, err
	}
	last := segs[len(segs)-1]
	arr, ok := parent.Get(last)
	if !ok {
		arr = value.NewArray()
		if err := parent.Set(last, arr); err != nil {
			return nil, err
		}
	} else if !arr.IsArray() {
		return nil, fmt.Errorf("%q is not an array-of-tables", last)
	}
	tbl := value.NewTable()
	if err := arr.AppendElement(tbl); err != nil {
		return nil, err
	}
	return tbl, nil
}
