package token

import "math"

// Lexer tokenizes a NOML source buffer. Every token's Raw is a slice of src,
// never a copy. The decoded payload of a literal (escape-processed string,
// parsed number) is computed by the scan* helpers below as the token is
// scanned, so a string token's Decoded is a separate string even when the
// literal has no escapes.
type Lexer struct {
	src []byte
	sm  *SourceMap
	pos int
}

// NewLexer builds a Lexer over src. src must not be mutated for the
// lifetime of any token or span it produces.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src, sm: NewSourceMap(src)}
}

// SourceMap returns the lexer's position index, shared with the parser and
// resolver so error spans resolve to the same line/column.
func (l *Lexer) SourceMap() *SourceMap { return l.sm }

func (l *Lexer) span(start, end int) Span {
	return NewSpan(l.sm, start, end)
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(off int) byte {
	i := l.pos + off
	if i >= len(l.src) {
		return 0
	}
	return l.src[i]
}

// Next scans and returns the next token. It returns a single Eof token once
// the end of the buffer is reached, and never advances past it.
func (l *Lexer) Next() (Token, *Error) {
	if l.pos >= len(l.src) {
		return Token{Kind: Eof, Span: l.span(l.pos, l.pos)}, nil
	}

	start := l.pos
	c := l.peek()

	switch {
	case c == ' ' || c == '\t':
		for l.pos < len(l.src) && (l.src[l.pos] == ' ' || l.src[l.pos] == '\t') {
			l.pos++
		}
		return l.tok(Whitespace, start), nil

	case c == '\r' && l.peekAt(1) == '\n':
		l.pos += 2
		return l.tok(Newline, start), nil
	case c == '\n':
		l.pos++
		return l.tok(Newline, start), nil

	case c == '#':
		for l.pos < len(l.src) && l.src[l.pos] != '\n' {
			l.pos++
		}
		return l.tok(Comment, start), nil

	case c == '[' && l.peekAt(1) == '[':
		l.pos += 2
		return l.tok(DoubleLBracket, start), nil
	case c == ']' && l.peekAt(1) == ']':
		l.pos += 2
		return l.tok(DoubleRBracket, start), nil
	case c == '[':
		l.pos++
		return l.tok(LBracket, start), nil
	case c == ']':
		l.pos++
		return l.tok(RBracket, start), nil
	case c == '{':
		l.pos++
		return l.tok(LBrace, start), nil
	case c == '}':
		l.pos++
		return l.tok(RBrace, start), nil
	case c == '(':
		l.pos++
		return l.tok(LParen, start), nil
	case c == ')':
		l.pos++
		return l.tok(RParen, start), nil
	case c == '=':
		l.pos++
		return l.tok(Equals, start), nil
	case c == ',':
		l.pos++
		return l.tok(Comma, start), nil
	case c == '.':
		l.pos++
		return l.tok(Dot, start), nil
	case c == '@':
		l.pos++
		return l.tok(At, start), nil

	case c == '"' || c == '\'':
		return l.scanString(start)

	case c == '+' || c == '-' || (c >= '0' && c <= '9'):
		return l.scanNumberOrBare(start)

	case isBareStart(c):
		return l.scanBare(start)
	}

	l.pos++
	return Token{}, Errorf(l.span(start, l.pos), "Lex", "illegal character %q", c)
}

func (l *Lexer) tok(k Kind, start int) Token {
	return Token{Kind: k, Span: l.span(start, l.pos), Raw: l.src[start:l.pos]}
}

func (l *Lexer) scanString(start int) (Token, *Error) {
	d := l.src[l.pos:]
	if len(d) >= 6 && d[0] == d[1] && d[1] == d[2] {
		n, err := ScanMultiline(d)
		if err != nil {
			l.pos = len(l.src)
			return Token{}, Errorf(l.span(start, l.pos), "Lex", "%v", err)
		}
		l.pos = start + n
		raw := l.src[start:l.pos]
		body := TrimLeadingNewline(raw[3 : len(raw)-3])
		kind := MultiLiteral
		decoded := string(body)
		if raw[0] == '"' {
			kind = MultiBasic
			dec, derr := DecodeMultilineBasic(body)
			if derr != nil {
				return Token{}, Errorf(l.span(start, l.pos), "Lex", "%v", derr)
			}
			decoded = dec
		}
		t := l.tok(String, start)
		t.StringKind = kind
		t.Decoded = decoded
		return t, nil
	}

	n, err := ScanQuoted(d)
	if err != nil {
		l.pos = len(l.src)
		return Token{}, Errorf(l.span(start, l.pos), "Lex", "%v", err)
	}
	l.pos = start + n
	raw := l.src[start:l.pos]
	body := raw[1 : len(raw)-1]
	kind := Literal
	decoded := string(body)
	if raw[0] == '"' {
		kind = Basic
		dec, derr := DecodeBasic(body)
		if derr != nil {
			return Token{}, Errorf(l.span(start, l.pos), "Lex", "%v", derr)
		}
		decoded = dec
	}
	t := l.tok(String, start)
	t.StringKind = kind
	t.Decoded = decoded
	return t, nil
}

func (l *Lexer) scanNumberOrBare(start int) (Token, *Error) {
	d := l.src[l.pos:]
	c := d[0]
	if c == '+' || c == '-' {
		if hasWord(d[1:], "inf") {
			l.pos = start + 4
			t := l.tok(Float, start)
			if c == '-' {
				t.FloatValue = math.Inf(-1)
			} else {
				t.FloatValue = math.Inf(1)
			}
			return t, nil
		}
		if hasWord(d[1:], "nan") {
			l.pos = start + 4
			t := l.tok(Float, start)
			t.FloatValue = math.NaN()
			return t, nil
		}
	}
	n, isFloat := scanNumber(d)
	if n == 0 {
		l.pos++
		return Token{}, Errorf(l.span(start, l.pos), "Lex", "illegal character %q", c)
	}
	// A leading sign followed by a bare word ("-inf", "+nan" aside, handled
	// as literal words above) is not a number; scanNumber already rejects
	// that since it requires at least one digit.
	l.pos = start + n
	raw := l.src[start:l.pos]
	if isFloat {
		v, ferr := ParseFloat(raw)
		if ferr != nil {
			return Token{}, Errorf(l.span(start, l.pos), "Lex", "bad float literal %q: %v", raw, ferr)
		}
		t := l.tok(Float, start)
		t.FloatValue = v
		return t, nil
	}
	v, base, ierr := ParseInteger(raw)
	if ierr != nil {
		return Token{}, Errorf(l.span(start, l.pos), "Lex", "bad integer literal %q: %v", raw, ierr)
	}
	t := l.tok(Integer, start)
	t.IntValue = v
	t.IntBase = base
	return t, nil
}

// hasWord reports whether d begins with word followed by a non-identifier
// byte (or end of input), so "inf" matches but "infinite" does not.
func hasWord(d []byte, word string) bool {
	if len(d) < len(word) || string(d[:len(word)]) != word {
		return false
	}
	if len(d) > len(word) && isBareCont(d[len(word)]) {
		return false
	}
	return true
}

func isBareStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isBareCont(c byte) bool {
	return isBareStart(c) || (c >= '0' && c <= '9') || c == '-'
}

func (l *Lexer) scanBare(start int) (Token, *Error) {
	for l.pos < len(l.src) && isBareCont(l.src[l.pos]) {
		l.pos++
	}
	if l.pos == start {
		l.pos++
		return Token{}, Errorf(l.span(start, l.pos), "Lex", "illegal character %q", l.src[start])
	}
	raw := l.src[start:l.pos]
	switch string(raw) {
	case "true":
		t := l.tok(Bool, start)
		t.BoolValue = true
		return t, nil
	case "false":
		t := l.tok(Bool, start)
		t.BoolValue = false
		return t, nil
	case "inf", "+inf":
		t := l.tok(Float, start)
		t.FloatValue = math.Inf(1)
		return t, nil
	case "-inf":
		t := l.tok(Float, start)
		t.FloatValue = math.Inf(-1)
		return t, nil
	case "nan", "+nan", "-nan":
		t := l.tok(Float, start)
		t.FloatValue = math.NaN()
		return t, nil
	}
	return l.tok(Bare, start), nil
}
