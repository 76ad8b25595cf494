// Package ttl registers a Turtle reader backed by github.com/knakk/rdf.
package ttl

import (
	"io"

	"github.com/cayleygraph/quad"
	"github.com/knakk/rdf"

	"github.com/cayleygraph/owldoc/quad/internal/rdfconv"
)

func init() {
	quad.RegisterFormat(quad.Format{
		Name:   "turtle",
		Ext:    []string{".ttl"},
		Mime:   []string{"text/turtle"},
		Reader: func(r io.Reader) quad.ReadCloser { return NewReader(r) },
	})
}

// NewReader returns a Turtle decoder. The returned reader also reports the
// document prefixes.
func NewReader(r io.Reader) *rdfconv.Reader {
	return rdfconv.NewReader(r, rdf.Turtle, rdfconv.TurtlePrefixes)
}
