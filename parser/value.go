package parser

import (
	"github.com/noml-lang/noml/ast"
	"github.com/noml-lang/noml/token"
)

// parseValue implements the grammar's `value` production: scalar | array |
// inlineTable | envCall | nativeCall | includeExpr.
func (p *parser) parseValue() (*ast.Value, error) {
	t := p.cur()
	switch t.Kind {
	case token.String:
		p.advance()
		return &ast.Value{
			Kind: ast.StringValue, Span: t.Span, Raw: t.Raw,
			Str: t.Decoded, StringKind: t.StringKind,
		}, nil

	case token.Integer:
		p.advance()
		return &ast.Value{Kind: ast.IntegerValue, Span: t.Span, Raw: t.Raw, Int: t.IntValue, IntBase: t.IntBase}, nil

	case token.Float:
		p.advance()
		return &ast.Value{Kind: ast.FloatValue, Span: t.Span, Raw: t.Raw, Float: t.FloatValue}, nil

	case token.Bool:
		p.advance()
		return &ast.Value{Kind: ast.BoolValue, Span: t.Span, Raw: t.Raw, Bool: t.BoolValue}, nil

	case token.LBracket:
		return p.parseArray()

	case token.LBrace:
		return p.parseInlineTable()

	case token.At:
		return p.parseNativeCall()

	case token.Bare:
		switch string(t.Raw) {
		case "null":
			p.advance()
			return &ast.Value{Kind: ast.NullValue, Span: t.Span, Raw: t.Raw}, nil
		case "env":
			return p.parseEnvCall()
		case "include":
			return p.parseIncludeExpr()
		}
	}
	return nil, errf(t.Span, "Parse", "unexpected token %s in value position", t.Kind)
}

func (p *parser) parseArray() (*ast.Value, error) {
	open := p.advance() // '['
	v := &ast.Value{Kind: ast.ArrayValue, Span: open.Span}
	for {
		p.skipWS()
		if p.cur().Kind == token.RBracket {
			break
		}
		elem, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		v.Elements = append(v.Elements, elem)
		p.skipWS()
		if p.cur().Kind == token.Comma {
			p.advance()
			v.ArrayTrailingSep = true
			continue
		}
		v.ArrayTrailingSep = false
		break
	}
	p.skipWS()
	if p.cur().Kind != token.RBracket {
		return nil, errf(p.cur().Span, "Parse", "expected ']' to close array, got %s", p.cur().Kind)
	}
	closeTok := p.advance()
	v.Span = open.Span.Join(closeTok.Span)
	v.ArrayMultiline = v.Span.Line != closeTok.Span.Line
	v.Raw = p.src[v.Span.Start:v.Span.End]
	return v, nil
}

// skipWS consumes whitespace, newlines and comments — array literals permit
// internal newlines, so its interior trivia is not format-preserved at
// per-element granularity, only the literal's overall multiline-ness.
func (p *parser) skipWS() {
	for {
		switch p.cur().Kind {
		case token.Whitespace, token.Newline, token.Comment:
			p.advance()
		default:
			return
		}
	}
}

func (p *parser) parseInlineTable() (*ast.Value, error) {
	open := p.advance() // '{'
	v := &ast.Value{Kind: ast.InlineTableValue, Span: open.Span}
	p.skipHSpace()
	for p.cur().Kind != token.RBrace {
		key, err := p.parseKeyPath()
		if err != nil {
			return nil, err
		}
		p.skipHSpace()
		if p.cur().Kind != token.Equals {
			return nil, errf(p.cur().Span, "Parse", "expected '=' in inline table entry, got %s", p.cur().Kind)
		}
		p.advance()
		p.skipHSpace()
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		v.Entries = append(v.Entries, ast.TableEntry{Key: key.toAST(), Value: val})
		p.skipHSpace()
		if p.cur().Kind == token.Comma {
			p.advance()
			p.skipHSpace()
			continue
		}
		break
	}
	if p.cur().Kind != token.RBrace {
		return nil, errf(p.cur().Span, "Parse", "expected '}' to close inline table, got %s", p.cur().Kind)
	}
	closeTok := p.advance()
	v.Span = open.Span.Join(closeTok.Span)
	v.Raw = p.src[v.Span.Start:v.Span.End]
	return v, nil
}

func (p *parser) parseEnvCall() (*ast.Value, error) {
	start := p.advance() // 'env'
	p.skipHSpace()
	if p.cur().Kind != token.LParen {
		return nil, errf(p.cur().Span, "Parse", "expected '(' after env, got %s", p.cur().Kind)
	}
	p.advance()
	p.skipHSpace()
	nameTok := p.cur()
	if nameTok.Kind != token.String {
		return nil, errf(nameTok.Span, "Parse", "env() requires a string name, got %s", nameTok.Kind)
	}
	p.advance()
	v := &ast.Value{Kind: ast.EnvValue, EnvKey: nameTok.Decoded}
	p.skipHSpace()
	if p.cur().Kind == token.Comma {
		p.advance()
		p.skipHSpace()
		def, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		v.EnvDefault = def
		p.skipHSpace()
	}
	if p.cur().Kind != token.RParen {
		return nil, errf(p.cur().Span, "Parse", "expected ')' to close env(...), got %s", p.cur().Kind)
	}
	end := p.advance()
	v.Span = start.Span.Join(end.Span)
	v.Raw = p.src[v.Span.Start:v.Span.End]
	return v, nil
}

func (p *parser) parseNativeCall() (*ast.Value, error) {
	at := p.advance() // '@'
	nameTok := p.cur()
	if nameTok.Kind != token.Bare {
		return nil, errf(nameTok.Span, "Parse", "expected a native constructor name after '@', got %s", nameTok.Kind)
	}
	p.advance()
	p.skipHSpace()
	if p.cur().Kind != token.LParen {
		return nil, errf(p.cur().Span, "Parse", "expected '(' after @%s, got %s", nameTok.Raw, p.cur().Kind)
	}
	p.advance()
	p.skipHSpace()
	argTok := p.cur()
	if argTok.Kind != token.String {
		return nil, errf(argTok.Span, "Parse", "@%s requires a string argument, got %s", nameTok.Raw, argTok.Kind)
	}
	p.advance()
	arg := &ast.Value{Kind: ast.StringValue, Span: argTok.Span, Raw: argTok.Raw, Str: argTok.Decoded, StringKind: argTok.StringKind}
	p.skipHSpace()
	if p.cur().Kind != token.RParen {
		return nil, errf(p.cur().Span, "Parse", "expected ')' to close @%s(...), got %s", nameTok.Raw, p.cur().Kind)
	}
	end := p.advance()
	v := &ast.Value{Kind: ast.NativeValue, NativeName: string(nameTok.Raw), NativeArg: arg}
	v.Span = at.Span.Join(end.Span)
	v.Raw = p.src[v.Span.Start:v.Span.End]
	return v, nil
}

func (p *parser) parseIncludeExpr() (*ast.Value, error) {
	start := p.advance() // 'include' bare word
	p.skipHSpace()
	path, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	v := &ast.Value{Kind: ast.IncludeValue, IncludePath: path}
	v.Span = start.Span.Join(path.Span)
	v.Raw = p.src[v.Span.Start:v.Span.End]
	return v, nil
}
