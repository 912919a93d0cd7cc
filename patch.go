package noml

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/noml-lang/noml/value"
)

// ApplyJSONPatch applies an RFC 6902 JSON Patch document to a resolved
// Value tree and returns the patched result as a new tree. root is not
// modified. This operates on the resolved Value, not the format-preserving
// Document — a JSON Patch has no notion of comments or quote style, so
// patching here is a coarser operation than serialize.Set.
func ApplyJSONPatch(root *value.Value, patch []byte) (*value.Value, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, err
	}
	patched, err := ops.Apply([]byte(root.ToJSONString()))
	if err != nil {
		return nil, err
	}
	return valueFromJSON(patched)
}

// orderedPair is one key/value pair of a JSON object, kept in the order it
// was written so a round trip through ApplyJSONPatch does not scramble a
// table's declaration order.
type orderedPair struct {
	Key   string
	Value any
}

// valueFromJSON decodes data with encoding/json's token scanner rather than
// into a map[string]any, since the latter discards object key order.
func valueFromJSON(data []byte) (*value.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeOrderedValue(dec)
	if err != nil {
		return nil, err
	}
	return jsonToValue(v), nil
}

func decodeOrderedValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeOrderedToken(dec, tok)
}

func decodeOrderedToken(dec *json.Decoder, tok json.Token) (any, error) {
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		var pairs []orderedPair
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("patch: expected object key, got %v", keyTok)
			}
			val, err := decodeOrderedValue(dec)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, orderedPair{Key: key, Value: val})
		}
		if _, err := dec.Token(); err != nil { // consume matching '}'
			return nil, err
		}
		return pairs, nil
	case '[':
		var elems []any
		for dec.More() {
			val, err := decodeOrderedValue(dec)
			if err != nil {
				return nil, err
			}
			elems = append(elems, val)
		}
		if _, err := dec.Token(); err != nil { // consume matching ']'
			return nil, err
		}
		return elems, nil
	default:
		return nil, fmt.Errorf("patch: unexpected delimiter %v", delim)
	}
}

func jsonToValue(v any) *value.Value {
	switch x := v.(type) {
	case nil:
		return value.NewNull()
	case bool:
		return value.NewBool(x)
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return value.NewInteger(n)
		}
		f, _ := x.Float64()
		return value.NewFloat(f)
	case string:
		return value.NewString(x)
	case []any:
		elems := make([]*value.Value, len(x))
		for i, e := range x {
			elems[i] = jsonToValue(e)
		}
		return value.NewArray(elems...)
	case []orderedPair:
		tbl := value.NewTable()
		for _, p := range x {
			_ = tbl.Set(p.Key, jsonToValue(p.Value))
		}
		return tbl
	default:
		return value.NewNull()
	}
}
