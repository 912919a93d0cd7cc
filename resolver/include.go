package resolver

import (
	"path/filepath"

	"github.com/noml-lang/noml/ast"
	"github.com/noml-lang/noml/debug"
	"github.com/noml-lang/noml/parser"
	"github.com/noml-lang/noml/value"
)

// resolveInclude loads and resolves the document named by pathVal, which is
// itself an ordinary value expression (so env() works inside a right-hand
// side include path), and merges into the caller's scope by returning the
// included document's resolved root table. pathVal is resolved against an
// empty table, so a ${...} reference inside an include path fails with
// InterpolationMissingPath.
func (rs *resolveState) resolveInclude(pathVal *ast.Value) (*value.Value, error) {
	if !rs.cfg.AllowIncludes {
		return nil, errf(pathVal.Span, "IncludeIoFailed", "includes are disabled by resolver configuration")
	}

	raw, err := rs.resolveValue(pathVal, value.NewTable())
	if err != nil {
		return nil, err
	}
	rel, ok := raw.AsString()
	if !ok {
		return nil, errTypeConflict(pathVal.Span, "include path must resolve to a string")
	}

	full := rel
	if !filepath.IsAbs(full) {
		full = filepath.Join(rs.baseDir, rel)
	}
	canon := filepath.Clean(full)

	for _, seen := range rs.includeStack {
		if seen == canon {
			return nil, errIncludeCycle(pathVal.Span, append(append([]string{}, rs.includeStack...), canon))
		}
	}
	if len(rs.includeStack) >= rs.cfg.MaxIncludeDepth {
		return nil, errMaxDepthExceeded(pathVal.Span, rs.cfg.MaxIncludeDepth)
	}

	if debug.Include() {
		debug.Logf("include: %s -> %s\n", rel, canon)
	}

	data, err := rs.cfg.Loader.Load(rs.ctx, canon)
	if err != nil {
		return nil, errIncludeIoFailed(pathVal.Span, canon, err)
	}

	doc, err := parser.Parse(data)
	if err != nil {
		return nil, errIncludeIoFailed(pathVal.Span, canon, err)
	}

	child := &resolveState{
		cfg:          rs.cfg,
		baseDir:      filepath.Dir(canon),
		includeStack: append(append([]string{}, rs.includeStack...), canon),
		ctx:          rs.ctx,
	}
	root := value.NewTable()
	if err := child.resolveItems(doc.Items, root); err != nil {
		return nil, err
	}
	return root, nil
}
