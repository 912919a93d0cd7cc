// Package parser turns a token stream into a format-preserving ast.Document
// via recursive descent with one token of lookahead. It never resolves
// dynamic constructs (env, include, native, interpolation) — that is the
// resolver's job, over the AST this package produces.
package parser

import (
	"fmt"
	"strings"

	"github.com/noml-lang/noml/ast"
	"github.com/noml-lang/noml/debug"
	"github.com/noml-lang/noml/token"
)

// Error is a structural parse failure: unexpected token, bad key path,
// duplicate or conflicting table declarations. It always carries the span
// at which the problem was detected.
type Error struct {
	Span    token.Span
	Kind    string
	Context string
}

func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s at %s: %s", e.Kind, e.Span, e.Context)
	}
	return fmt.Sprintf("%s at %s", e.Kind, e.Span)
}

func errf(span token.Span, kind, format string, args ...any) *Error {
	return &Error{Span: span, Kind: kind, Context: fmt.Sprintf(format, args...)}
}

// Parse lexes and parses src into a Document. It is the parse_raw /
// parse_preserving entrypoint: no dynamic construct is evaluated.
func Parse(src []byte) (*ast.Document, error) {
	src = stripBOM(src)
	lex := token.NewLexer(src)
	var toks []token.Token
	for {
		tok, lerr := lex.Next()
		if lerr != nil {
			return nil, lerr
		}
		if debug.Lex() {
			debug.Logf("lex: %s %q\n", tok.Kind, tok.Span.Snippet(src))
		}
		toks = append(toks, tok)
		if tok.Kind == token.Eof {
			break
		}
	}
	p := &parser{toks: toks, src: src, sm: lex.SourceMap(), tables: newScopeState()}
	items, err := p.parseDocument()
	if err != nil {
		return nil, err
	}
	return ast.NewDocument(src, items), nil
}

func stripBOM(src []byte) []byte {
	const bom = "\xef\xbb\xbf"
	if len(src) >= 3 && string(src[:3]) == bom {
		return src[3:]
	}
	return src
}

type parser struct {
	toks   []token.Token
	src    []byte
	sm     *token.SourceMap
	pos    int
	scope  []string
	tables *scopeState
}

func (p *parser) cur() token.Token { return p.toks[p.pos] }

func (p *parser) advance() token.Token {
	t := p.toks[p.pos]
	if t.Kind != token.Eof {
		p.pos++
	}
	return t
}

// skipHSpace consumes Whitespace tokens only, leaving Newline/Comment/Eof in
// place. Horizontal whitespace is always trivia belonging to the item being
// parsed; it never becomes its own item.
func (p *parser) skipHSpace() {
	for p.cur().Kind == token.Whitespace {
		p.advance()
	}
}

// peekSignificant looks n tokens of non-whitespace ahead without consuming
// anything.
func (p *parser) peekSignificant(n int) token.Token {
	i := p.pos
	seen := 0
	for i < len(p.toks) {
		if p.toks[i].Kind == token.Whitespace {
			i++
			continue
		}
		if seen == n {
			return p.toks[i]
		}
		seen++
		i++
	}
	return token.Token{Kind: token.Eof}
}

func (p *parser) parseDocument() ([]*ast.Item, error) {
	var items []*ast.Item
	for p.cur().Kind != token.Eof {
		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		if item != nil {
			if debug.Parse() {
				debug.Logf("parse: %s %s\n", item.Kind, item.Key)
			}
			items = append(items, item)
		}
	}
	return items, nil
}

func (p *parser) parseItem() (*ast.Item, error) {
	startOff := p.cur().Span.Start
	p.skipHSpace()

	switch p.cur().Kind {
	case token.Eof:
		// Trailing horizontal whitespace with nothing after it: fold into a
		// final blank item so every source byte still belongs to an item.
		if p.cur().Span.Start == startOff {
			return nil, nil
		}
		return p.finishTrivia(startOff, ast.BlankItem), nil

	case token.Newline:
		p.advance()
		return p.finishTrivia(startOff, ast.BlankItem), nil

	case token.Comment:
		p.advance()
		if p.cur().Kind == token.Newline {
			p.advance()
		}
		return p.finishTrivia(startOff, ast.CommentItem), nil

	case token.DoubleLBracket:
		return p.parseHeader(startOff, ast.ArrayTableHeaderItem)

	case token.LBracket:
		return p.parseHeader(startOff, ast.TableHeaderItem)

	case token.Bare:
		if string(p.cur().Raw) == "include" && p.peekSignificant(1).Kind == token.String {
			return p.parseInclude(startOff)
		}
	}
	return p.parseKeyValue(startOff)
}

func (p *parser) finishTrivia(startOff int, kind ast.Kind) *ast.Item {
	span := token.NewSpan(p.sm, startOff, p.curOffset())
	return &ast.Item{Kind: kind, Span: span, Raw: p.src[startOff:span.End]}
}

func (p *parser) curOffset() int {
	if p.pos == 0 {
		return 0
	}
	return p.toks[p.pos-1].Span.End
}

func (p *parser) parseHeader(startOff int, kind ast.Kind) (*ast.Item, error) {
	open := p.advance() // '[' or '[['
	p.skipHSpace()
	key, err := p.parseKeyPath()
	if err != nil {
		return nil, err
	}
	p.skipHSpace()
	wantClose := token.RBracket
	if kind == ast.ArrayTableHeaderItem {
		wantClose = token.DoubleRBracket
	}
	if p.cur().Kind != wantClose {
		return nil, errf(p.cur().Span, "Parse", "expected %s to close table header, got %s", wantClose, p.cur().Kind)
	}
	p.advance()

	path := key.String()
	if kind == ast.TableHeaderItem {
		if err := p.tables.declareTable(path, true); err != nil {
			return nil, errf(open.Span, "Parse", "%v", err)
		}
		p.scope = key.segmentNames()
	} else {
		if err := p.tables.declareArrayTable(path); err != nil {
			return nil, errf(open.Span, "Parse", "%v", err)
		}
		p.scope = key.segmentNames()
	}

	trailing := p.consumeTrailingCommentAndNewline()
	item := &ast.Item{Kind: kind, Key: key.toAST(), Span: p.spanFrom(startOff), TrailingComment: trailing}
	return item, nil
}

func (p *parser) parseInclude(startOff int) (*ast.Item, error) {
	p.advance() // 'include' bare word
	p.skipHSpace()
	val, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	trailing := p.consumeTrailingCommentAndNewline()
	return &ast.Item{Kind: ast.IncludeItem, IncludePath: val, Span: p.spanFrom(startOff), TrailingComment: trailing}, nil
}

func (p *parser) parseKeyValue(startOff int) (*ast.Item, error) {
	key, err := p.parseKeyPath()
	if err != nil {
		return nil, err
	}
	p.skipHSpace()
	if p.cur().Kind != token.Equals {
		return nil, errf(p.cur().Span, "Parse", "expected '=' after key %q, got %s", key.String(), p.cur().Kind)
	}
	p.advance()
	p.skipHSpace()
	val, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	full := append(append([]string(nil), p.scope...), key.segmentNames()...)
	fullPath := strings.Join(full, ".")
	if err := p.tables.declareLeaf(fullPath); err != nil {
		return nil, errf(key.span, "Parse", "%v", err)
	}

	trailing := p.consumeTrailingCommentAndNewline()
	item := &ast.Item{Kind: ast.KeyValueItem, Key: key.toAST(), Value: val, Span: p.spanFrom(startOff), TrailingComment: trailing}
	return item, nil
}

// consumeTrailingCommentAndNewline consumes the rest of the current line:
// optional horizontal whitespace, an optional trailing "# ..." comment, and
// the terminating newline (or EOF). It returns the comment's raw bytes, or
// nil if there was none, so callers can preserve it across mutation.
func (p *parser) consumeTrailingCommentAndNewline() []byte {
	p.skipHSpace()
	var comment []byte
	if p.cur().Kind == token.Comment {
		comment = p.cur().Raw
		p.advance()
	}
	if p.cur().Kind == token.Newline {
		p.advance()
	}
	return comment
}

func (p *parser) spanFrom(startOff int) token.Span {
	return token.NewSpan(p.sm, startOff, p.curOffset())
}
