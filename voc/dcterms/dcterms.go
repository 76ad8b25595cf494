// Package dcterms contains constants of the DCMI Metadata Terms vocabulary.
package dcterms

import "github.com/cayleygraph/owldoc/voc"

func init() {
	voc.Register(Prefix, NS)
}

const (
	NS     = `http://purl.org/dc/terms/`
	Prefix = `dcterms:`
)

const (
	Title       = NS + "title"
	Description = NS + "description"
	Created     = NS + "created"
	License     = NS + "license"
)
