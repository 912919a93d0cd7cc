package resolver

import (
	"github.com/noml-lang/noml/ast"
	"github.com/noml-lang/noml/value"
)

// resolveValue materializes a single AST value node against root, the
// Value tree built so far — the only state interpolation is allowed to
// read from, per the forward-pass-only ordering guarantee.
func (rs *resolveState) resolveValue(v *ast.Value, root *value.Value) (*value.Value, error) {
	switch v.Kind {
	case ast.NullValue:
		return value.NewNull(), nil
	case ast.BoolValue:
		return value.NewBool(v.Bool), nil
	case ast.IntegerValue:
		return value.NewInteger(v.Int), nil
	case ast.FloatValue:
		return value.NewFloat(v.Float), nil

	case ast.StringValue:
		s := v.Str
		if rs.cfg.Interpolation {
			resolved, err := rs.interpolate(s, v.Span, root)
			if err != nil {
				return nil, err
			}
			s = resolved
		}
		return value.NewString(s), nil

	case ast.ArrayValue:
		elems := make([]*value.Value, len(v.Elements))
		for i, e := range v.Elements {
			rv, err := rs.resolveValue(e, root)
			if err != nil {
				return nil, err
			}
			elems[i] = rv
		}
		return value.NewArray(elems...), nil

	case ast.InlineTableValue:
		tbl := value.NewTable()
		for _, entry := range v.Entries {
			rv, err := rs.resolveValue(entry.Value, root)
			if err != nil {
				return nil, err
			}
			path := entry.Key.String()
			if tbl.Contains(path) {
				return nil, errDuplicateKey(v.Span, path)
			}
			if err := tbl.Set(path, rv); err != nil {
				return nil, errTypeConflict(v.Span, err.Error())
			}
		}
		return tbl, nil

	case ast.EnvValue:
		return rs.resolveEnv(v, root)

	case ast.NativeValue:
		return rs.resolveNative(v)

	case ast.IncludeValue:
		return rs.resolveInclude(v.IncludePath)

	default:
		return nil, errf(v.Span, "TypeConflict", "unresolvable value node kind %s", v.Kind)
	}
}

func (rs *resolveState) resolveEnv(v *ast.Value, root *value.Value) (*value.Value, error) {
	if !rs.cfg.AllowEnv {
		return nil, errf(v.Span, "MissingEnv", "env() is disabled by resolver configuration")
	}
	val, ok := rs.getenv(v.EnvKey)
	if ok {
		return value.NewString(val), nil
	}
	if v.EnvDefault != nil {
		return rs.resolveValue(v.EnvDefault, root)
	}
	return nil, errMissingEnv(v.Span, v.EnvKey)
}

func (rs *resolveState) getenv(name string) (string, bool) {
	if rs.cfg.Getenv != nil {
		return rs.cfg.Getenv(name)
	}
	return osLookupEnv(name)
}
