// Package dc contains constants of the Dublin Core elements vocabulary.
package dc

import "github.com/cayleygraph/owldoc/voc"

func init() {
	voc.Register(Prefix, NS)
}

const (
	NS     = `http://purl.org/dc/elements/1.1/`
	Prefix = `dc:`
)

const (
	Title       = NS + "title"
	Description = NS + "description"
	Creator     = NS + "creator"
)
