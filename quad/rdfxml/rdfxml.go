// Package rdfxml registers an RDF/XML reader backed by github.com/knakk/rdf.
package rdfxml

import (
	"io"

	"github.com/cayleygraph/quad"
	"github.com/knakk/rdf"

	"github.com/cayleygraph/owldoc/quad/internal/rdfconv"
)

func init() {
	quad.RegisterFormat(quad.Format{
		Name:   "rdfxml",
		Ext:    []string{".owl", ".rdf", ".xml"},
		Mime:   []string{"application/rdf+xml"},
		Reader: func(r io.Reader) quad.ReadCloser { return NewReader(r) },
	})
}

// NewReader returns an RDF/XML decoder. The returned reader also reports
// the xmlns declarations of the document.
func NewReader(r io.Reader) *rdfconv.Reader {
	return rdfconv.NewReader(r, rdf.RDFXML, rdfconv.XMLPrefixes)
}
