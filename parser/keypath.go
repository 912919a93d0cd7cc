package parser

import (
	"strings"

	"github.com/noml-lang/noml/ast"
	"github.com/noml-lang/noml/token"
)

// keyPath is a dotted sequence of key segments as written on the LHS of a
// key-value or inside a table/array-of-tables header.
type keyPath struct {
	segs []keySeg
	span token.Span
}

type keySeg struct {
	name string
	raw  string
}

func (k keyPath) segmentNames() []string {
	names := make([]string, len(k.segs))
	for i, s := range k.segs {
		names[i] = s.name
	}
	return names
}

func (k keyPath) String() string {
	return strings.Join(k.segmentNames(), ".")
}

func (k keyPath) toAST() ast.Key {
	segs := make([]ast.KeySegment, len(k.segs))
	for i, s := range k.segs {
		segs[i] = ast.KeySegment{Name: s.name, Raw: s.raw}
	}
	return ast.Key{Segments: segs}
}

// parseKeyPath parses Bare|String ('.' Bare|String)* with no intervening
// horizontal whitespace required (but tolerated) around the dots.
func (p *parser) parseKeyPath() (keyPath, error) {
	first, err := p.parseKeySegment()
	if err != nil {
		return keyPath{}, err
	}
	kp := keyPath{segs: []keySeg{first}, span: p.toks[p.pos-1].Span}
	start := kp.span

	for {
		save := p.pos
		p.skipHSpace()
		if p.cur().Kind != token.Dot {
			p.pos = save
			break
		}
		p.advance()
		p.skipHSpace()
		seg, err := p.parseKeySegment()
		if err != nil {
			return keyPath{}, err
		}
		kp.segs = append(kp.segs, seg)
	}
	kp.span = start.Join(p.toks[p.pos-1].Span)
	return kp, nil
}

func (p *parser) parseKeySegment() (keySeg, error) {
	t := p.cur()
	switch t.Kind {
	case token.Bare:
		p.advance()
		return keySeg{name: string(t.Raw), raw: string(t.Raw)}, nil
	case token.String:
		p.advance()
		return keySeg{name: t.Decoded, raw: string(t.Raw)}, nil
	default:
		return keySeg{}, errf(t.Span, "Parse", "expected a key, got %s", t.Kind)
	}
}
