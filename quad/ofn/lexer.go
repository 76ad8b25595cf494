package ofn

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tEOF tokenKind = iota
	tOpen
	tClose
	tEquals
	tIRI     // <...>, text without brackets
	tName    // keyword or prefixed name
	tBNode   // _:x, text without "_:"
	tLiteral // quoted string, unescaped text
	tNumber
	tDatatype // ^^ marker
	tLang     // @lang, text without "@"
)

type token struct {
	kind tokenKind
	text string
	line int
}

func (t token) String() string {
	switch t.kind {
	case tEOF:
		return "end of input"
	case tOpen:
		return "'('"
	case tClose:
		return "')'"
	case tIRI:
		return "<" + t.text + ">"
	case tLiteral:
		return fmt.Sprintf("%q", t.text)
	}
	return t.text
}

type lexer struct {
	src  string
	pos  int
	line int
}

func newLexer(src string) *lexer { return &lexer{src: src, line: 1} }

func (l *lexer) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("line %d: %s", l.line, fmt.Sprintf(format, args...))
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == '#':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

func isDelim(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '(', ')', '=', '"', '<', '^', '@', '#':
		return true
	}
	return false
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return token{kind: tEOF, line: l.line}, nil
	}
	start := l.pos
	c := l.src[l.pos]
	switch {
	case c == '(':
		l.pos++
		return token{kind: tOpen, line: l.line}, nil
	case c == ')':
		l.pos++
		return token{kind: tClose, line: l.line}, nil
	case c == '=':
		l.pos++
		return token{kind: tEquals, line: l.line}, nil
	case c == '<':
		end := strings.IndexByte(l.src[l.pos:], '>')
		if end < 0 {
			return token{}, l.errorf("unterminated IRI")
		}
		l.pos += end + 1
		return token{kind: tIRI, text: l.src[start+1 : l.pos-1], line: l.line}, nil
	case c == '"':
		return l.literal()
	case c == '^':
		if !strings.HasPrefix(l.src[l.pos:], "^^") {
			return token{}, l.errorf("unexpected '^'")
		}
		l.pos += 2
		return token{kind: tDatatype, line: l.line}, nil
	case c == '@':
		l.pos++
		for l.pos < len(l.src) && !isDelim(l.src[l.pos]) {
			l.pos++
		}
		return token{kind: tLang, text: l.src[start+1 : l.pos], line: l.line}, nil
	}
	for l.pos < len(l.src) && !isDelim(l.src[l.pos]) {
		l.pos++
	}
	text := l.src[start:l.pos]
	switch {
	case strings.HasPrefix(text, "_:"):
		return token{kind: tBNode, text: text[2:], line: l.line}, nil
	case strings.Trim(text, "0123456789") == "":
		return token{kind: tNumber, text: text, line: l.line}, nil
	}
	return token{kind: tName, text: text, line: l.line}, nil
}

func (l *lexer) literal() (token, error) {
	line := l.line
	l.pos++
	var sb strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case '"':
			l.pos++
			return token{kind: tLiteral, text: sb.String(), line: line}, nil
		case '\\':
			if l.pos+1 < len(l.src) {
				l.pos++
				c = l.src[l.pos]
			}
		case '\n':
			l.line++
		}
		sb.WriteByte(c)
		l.pos++
	}
	return token{}, fmt.Errorf("line %d: unterminated string", line)
}
