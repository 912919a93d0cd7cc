package token

import (
	"fmt"
	"sort"
	"strconv"
)

// SourceMap maps byte offsets into a source buffer to (line, column) pairs.
// It is built once per document and shared by every Span the lexer and
// parser produce against that document.
type SourceMap struct {
	src   []byte
	lines []int // byte offsets of '\n' characters, ascending
}

// NewSourceMap indexes the newlines in src so that LineCol is a binary
// search rather than a linear scan over the whole document.
func NewSourceMap(src []byte) *SourceMap {
	sm := &SourceMap{src: src}
	for i, c := range src {
		if c == '\n' {
			sm.lines = append(sm.lines, i)
		}
	}
	return sm
}

// LineCol returns the 1-indexed line and column for a byte offset.
func (sm *SourceMap) LineCol(off int) (line, col int) {
	n := len(sm.lines)
	idx := sort.Search(n, func(i int) bool { return sm.lines[i] >= off })
	if idx == 0 {
		return 1, off + 1
	}
	return idx + 1, off - sm.lines[idx-1]
}

// Span is a byte range in the source buffer with cached line/column for its
// start. The end offset is exclusive.
type Span struct {
	Start, End   int
	Line, Column int
}

// NewSpan builds a Span for [start, end) using sm to resolve line/column.
func NewSpan(sm *SourceMap, start, end int) Span {
	line, col := sm.LineCol(start)
	return Span{Start: start, End: end, Line: line, Column: col}
}

// Join returns the smallest span covering both a and b.
func (s Span) Join(o Span) Span {
	res := s
	if o.Start < res.Start {
		res.Start, res.Line, res.Column = o.Start, o.Line, o.Column
	}
	if o.End > res.End {
		res.End = o.End
	}
	return res
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// Snippet returns a short, quoted excerpt of src around the span's start,
// for embedding in error messages.
func (s Span) Snippet(src []byte) string {
	lo := max(0, s.Start-10)
	hi := min(len(src), s.Start+10)
	sample := strconv.Quote(string(src[lo:hi]))
	return sample[1 : len(sample)-1]
}
