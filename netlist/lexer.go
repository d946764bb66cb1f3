package netlist

import "fmt"

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent
	tokPunct
)

type token struct {
	kind    tokenKind
	text    string
	line    int
	escaped bool // written as \name; never a keyword
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokPunct:
		return fmt.Sprintf("%q", t.text)
	default:
		return fmt.Sprintf("identifier %q", t.text)
	}
}

func (t token) is(text string) bool {
	return !t.escaped && t.kind != tokEOF && t.text == text
}

var keywords = map[string]struct{}{
	"module":    {},
	"endmodule": {},
	"input":     {},
	"output":    {},
	"wire":      {},
}

func isPunct(c byte) bool {
	switch c {
	case '(', ')', ',', ';', '.', '=', '#', '{', '}', '"':
		return true
	}
	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// lexer splits netlist source into identifiers and punctuation, dropping
// whitespace and comments.
type lexer struct {
	src  []byte
	pos  int
	line int
}

func newLexer(src []byte) *lexer {
	return &lexer{src: src, line: 1}
}

func (l *lexer) next() (token, error) {
	if err := l.skip(); err != nil {
		return token{}, err
	}
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line}, nil
	}

	c := l.src[l.pos]
	switch {
	case isPunct(c):
		l.pos++
		return token{kind: tokPunct, text: string(c), line: l.line}, nil
	case c == '\\':
		start := l.pos + 1
		end := start
		for end < len(l.src) && !isSpace(l.src[end]) {
			end++
		}
		if end == start {
			return token{}, &ParseError{Line: l.line, Msg: "empty escaped identifier"}
		}
		l.pos = end
		return token{kind: tokIdent, text: string(l.src[start:end]), line: l.line, escaped: true}, nil
	default:
		start := l.pos
		for l.pos < len(l.src) {
			c := l.src[l.pos]
			if isSpace(c) || isPunct(c) || c == '\\' || l.atComment() {
				break
			}
			l.pos++
		}
		return token{kind: tokIdent, text: string(l.src[start:l.pos]), line: l.line}, nil
	}
}

func (l *lexer) atComment() bool {
	return l.pos+1 < len(l.src) && l.src[l.pos] == '/' && (l.src[l.pos+1] == '/' || l.src[l.pos+1] == '*')
}

func (l *lexer) skip() error {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case isSpace(c):
			l.pos++
		case l.atComment() && l.src[l.pos+1] == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case l.atComment():
			startLine := l.line
			l.pos += 2
			for {
				if l.pos+1 >= len(l.src) {
					return &ParseError{Line: startLine, Msg: "unterminated block comment"}
				}
				if l.src[l.pos] == '*' && l.src[l.pos+1] == '/' {
					l.pos += 2
					break
				}
				if l.src[l.pos] == '\n' {
					l.line++
				}
				l.pos++
			}
		default:
			return nil
		}
	}
	return nil
}
