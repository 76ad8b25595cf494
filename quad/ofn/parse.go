package ofn

// node is one element of the functional-syntax tree: either a compound
// Name(args...) or an atom.
type node struct {
	tok  token
	head string
	args []*node

	// compound is set for Name(args...) forms.
	compound bool
	// datatype and lang qualify literal atoms.
	datatype *node
	lang     string
}

type parser struct {
	lex  *lexer
	peek *token
}

func (p *parser) next() (token, error) {
	if p.peek != nil {
		t := *p.peek
		p.peek = nil
		return t, nil
	}
	return p.lex.next()
}

func (p *parser) lookahead() (token, error) {
	if p.peek == nil {
		t, err := p.lex.next()
		if err != nil {
			return t, err
		}
		p.peek = &t
	}
	return *p.peek, nil
}

// parseDocument reads every top-level form.
func (p *parser) parseDocument() ([]*node, error) {
	var out []*node
	for {
		t, err := p.lookahead()
		if err != nil {
			return nil, err
		}
		if t.kind == tEOF {
			return out, nil
		}
		n, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
}

func (p *parser) parseNode() (*node, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	switch t.kind {
	case tEOF:
		return nil, p.lex.errorf("unexpected end of input")
	case tOpen, tClose, tDatatype, tLang:
		return nil, p.lex.errorf("unexpected %v", t)
	case tEquals:
		return &node{tok: t}, nil
	case tLiteral:
		n := &node{tok: t}
		la, err := p.lookahead()
		if err != nil {
			return nil, err
		}
		switch la.kind {
		case tDatatype:
			p.next()
			dt, err := p.next()
			if err != nil {
				return nil, err
			}
			if dt.kind != tIRI && dt.kind != tName {
				return nil, p.lex.errorf("expected datatype after ^^, got %v", dt)
			}
			n.datatype = &node{tok: dt}
		case tLang:
			p.next()
			n.lang = la.text
		}
		return n, nil
	case tName:
		la, err := p.lookahead()
		if err != nil {
			return nil, err
		}
		if la.kind != tOpen {
			return &node{tok: t}, nil
		}
		p.next()
		n := &node{tok: t, head: t.text, compound: true}
		for {
			la, err := p.lookahead()
			if err != nil {
				return nil, err
			}
			if la.kind == tClose {
				p.next()
				return n, nil
			}
			if la.kind == tEOF {
				return nil, p.lex.errorf("unterminated %s(", t.text)
			}
			arg, err := p.parseNode()
			if err != nil {
				return nil, err
			}
			n.args = append(n.args, arg)
		}
	}
	return &node{tok: t}, nil
}
