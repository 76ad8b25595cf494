// Package voc keeps the table of well-known RDF vocabularies used as a
// fallback prefix table when an ontology does not declare its own prefixes.
//
// Every vocabulary registered here is also registered with
// github.com/cayleygraph/quad/voc, so quad.IRI.Short and Full agree with it.
package voc

import (
	"sort"
	"strings"
	"sync"

	qvoc "github.com/cayleygraph/quad/voc"
	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/cayleygraph/quad/voc/rdfs"
	"github.com/cayleygraph/quad/voc/xsd"
)

func init() {
	Register(rdf.Prefix, rdf.NS)
	Register(rdfs.Prefix, rdfs.NS)
	Register(xsd.Prefix, xsd.NS)
}

// Namespace is a vocabulary base IRI with its prefix, e.g. "owl:".
type Namespace struct {
	Prefix string
	Full   string
}

// Name returns the prefix without the trailing colon.
func (n Namespace) Name() string { return strings.TrimSuffix(n.Prefix, ":") }

var (
	mu    sync.RWMutex
	known = make(map[string]string)
)

// Register associates a prefix (with trailing colon) with a base IRI.
func Register(prefix, ns string) {
	mu.Lock()
	known[prefix] = ns
	mu.Unlock()
	qvoc.RegisterPrefix(prefix, ns)
}

// List returns all registered vocabularies sorted by prefix.
func List() []Namespace {
	mu.RLock()
	out := make([]Namespace, 0, len(known))
	for p, ns := range known {
		out = append(out, Namespace{Prefix: p, Full: ns})
	}
	mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Prefix < out[j].Prefix })
	return out
}
