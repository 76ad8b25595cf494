// Package skos contains constants of the Simple Knowledge Organization System.
package skos

import "github.com/cayleygraph/owldoc/voc"

func init() {
	voc.Register(Prefix, NS)
}

const (
	NS     = `http://www.w3.org/2004/02/skos/core#`
	Prefix = `skos:`
)

const (
	Definition = NS + "definition"
	Note       = NS + "note"
	Example    = NS + "example"
	PrefLabel  = NS + "prefLabel"
	ScopeNote  = NS + "scopeNote"
)
