// Package rdfconv adapts github.com/knakk/rdf triple decoders to quad
// readers, and recovers the namespace declarations the decoders discard.
package rdfconv

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/xsd"
	"github.com/knakk/rdf"

	"github.com/cayleygraph/owldoc/owl"
)

// PrefixScanner extracts prefix declarations from raw document text.
type PrefixScanner func(src []byte) []owl.Prefix

// Reader decodes a whole document on the first call to ReadQuad.
type Reader struct {
	r      io.Reader
	format rdf.Format
	scan   PrefixScanner

	parsed   bool
	err      error
	quads    []quad.Quad
	n        int
	prefixes []owl.Prefix
}

// NewReader returns a reader decoding r in the given knakk/rdf format.
func NewReader(r io.Reader, format rdf.Format, scan PrefixScanner) *Reader {
	return &Reader{r: r, format: format, scan: scan}
}

func (r *Reader) parse() {
	if r.parsed {
		return
	}
	r.parsed = true
	src, err := io.ReadAll(r.r)
	if err != nil {
		r.err = err
		return
	}
	if r.scan != nil {
		r.prefixes = r.scan(src)
	}
	dec := rdf.NewTripleDecoder(bytes.NewReader(src), r.format)
	for {
		t, err := dec.Decode()
		if err == io.EOF {
			return
		} else if err != nil {
			r.err = err
			return
		}
		r.quads = append(r.quads, quad.Quad{
			Subject:   Value(t.Subj),
			Predicate: Value(t.Pred),
			Object:    Value(t.Obj),
		})
	}
}

func (r *Reader) ReadQuad() (quad.Quad, error) {
	r.parse()
	if r.err != nil {
		return quad.Quad{}, r.err
	}
	if r.n >= len(r.quads) {
		return quad.Quad{}, io.EOF
	}
	q := r.quads[r.n]
	r.n++
	return q, nil
}

func (r *Reader) Close() error { return nil }

// Prefixes returns the namespace declarations found in the document.
func (r *Reader) Prefixes() []owl.Prefix {
	r.parse()
	return r.prefixes
}

// Value converts a knakk/rdf term.
func Value(t rdf.Term) quad.Value {
	switch t := t.(type) {
	case rdf.IRI:
		return quad.IRI(t.String())
	case rdf.Blank:
		return quad.BNode(strings.TrimPrefix(t.String(), "_:"))
	case rdf.Literal:
		if lang := t.Lang(); lang != "" {
			return quad.LangString{Value: quad.String(t.String()), Lang: lang}
		}
		dt := t.DataType.String()
		if dt == "" || dt == xsd.NS+"string" {
			return quad.String(t.String())
		}
		return quad.TypedString{Value: quad.String(t.String()), Type: quad.IRI(dt)}
	}
	return quad.String(t.String())
}

var (
	turtlePrefix = regexp.MustCompile(`(?mi)^\s*@?prefix\s+([A-Za-z0-9_.-]*):\s*<([^>]*)>`)
	xmlnsPrefix  = regexp.MustCompile(`xmlns(?::([A-Za-z0-9_.-]+))?\s*=\s*"([^"]*)"`)
)

// TurtlePrefixes scans @prefix and PREFIX declarations.
func TurtlePrefixes(src []byte) []owl.Prefix {
	return scan(turtlePrefix, src)
}

// XMLPrefixes scans xmlns attributes. The default namespace gets the empty
// prefix name.
func XMLPrefixes(src []byte) []owl.Prefix {
	return scan(xmlnsPrefix, src)
}

func scan(re *regexp.Regexp, src []byte) []owl.Prefix {
	var out []owl.Prefix
	for _, m := range re.FindAllSubmatch(src, -1) {
		out = append(out, owl.Prefix{Name: string(m[1]), IRI: string(m[2])})
	}
	return out
}
