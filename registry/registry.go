// Package registry keeps the concept registry: a persistent table of the
// classes and properties seen across ontologies, used to type properties
// that a document uses but never declares.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdf"

	"github.com/cayleygraph/owldoc/clog"
	"github.com/cayleygraph/owldoc/owl"
)

// Kind is the type column of a registry entry.
type Kind string

const (
	Class            Kind = "class"
	ObjectProperty   Kind = "object_property"
	DatatypeProperty Kind = "datatype_property"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case Class, ObjectProperty, DatatypeProperty:
		return true
	}
	return false
}

// Entry is one registered concept.
type Entry struct {
	IRI         quad.IRI
	Kind        Kind
	Description string
}

// Store persists registry entries.
type Store interface {
	Load() ([]Entry, error)
	Save(entries []Entry) error
	Close() error
}

// Registry maps concept IRIs to entries. It is read once when opened and
// written back by Save.
type Registry struct {
	store   Store
	entries map[quad.IRI]Entry
	dirty   bool
}

// Open opens a registry backend by name: "markdown", "leveldb" or "none".
func Open(backend, path string) (*Registry, error) {
	var (
		s   Store
		err error
	)
	switch backend {
	case "markdown":
		s, err = OpenFile(path)
	case "leveldb":
		s, err = OpenLevelDB(path)
	case "none", "":
		s = nopStore{}
	default:
		return nil, fmt.Errorf("unknown registry backend %q", backend)
	}
	if err != nil {
		return nil, err
	}
	return New(s)
}

// New reads every entry of s.
func New(s Store) (*Registry, error) {
	list, err := s.Load()
	if err != nil {
		s.Close()
		return nil, err
	}
	r := &Registry{store: s, entries: make(map[quad.IRI]Entry, len(list))}
	for _, e := range list {
		r.entries[e.IRI] = e
	}
	clog.Infof("loaded %d entries from the concept registry", len(list))
	return r, nil
}

// Len returns the number of entries.
func (r *Registry) Len() int { return len(r.entries) }

// Get returns the entry for iri.
func (r *Registry) Get(iri quad.IRI) (Entry, bool) {
	e, ok := r.entries[iri]
	return e, ok
}

// Entries returns all entries sorted by base IRI, then name.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sortEntries(out)
	return out
}

// Merge adds the entries that are not registered yet and returns how many
// were added. Existing entries are never changed.
func (r *Registry) Merge(entries []Entry) int {
	n := 0
	for _, e := range entries {
		if _, ok := r.entries[e.IRI]; ok || e.IRI == "" || !e.Kind.Valid() {
			continue
		}
		r.entries[e.IRI] = e
		n++
		if clog.V(2) {
			clog.Infof("registry: added %s %s", e.Kind, e.IRI)
		}
	}
	if n > 0 {
		r.dirty = true
	}
	return n
}

// TypeQuads returns rdf:type triples for every registered property, so
// that later loads know their kind.
func (r *Registry) TypeQuads() []quad.Quad {
	var out []quad.Quad
	for _, e := range r.Entries() {
		var typ string
		switch e.Kind {
		case ObjectProperty:
			typ = owl.ObjectPropertyType
		case DatatypeProperty:
			typ = owl.DatatypePropertyType
		default:
			continue
		}
		out = append(out, quad.Quad{Subject: e.IRI, Predicate: quad.IRI(rdf.NS + "type"), Object: quad.IRI(typ)})
	}
	return out
}

// Save writes the registry back if anything was added.
func (r *Registry) Save() error {
	if !r.dirty {
		return nil
	}
	if err := r.store.Save(r.Entries()); err != nil {
		return err
	}
	r.dirty = false
	clog.Infof("updated the concept registry with %d entries", len(r.entries))
	return nil
}

// Close releases the backing store.
func (r *Registry) Close() error { return r.store.Close() }

// Split cuts an IRI into its base, ending with '#' or '/', and its local
// name.
func Split(iri string) (base, name string) {
	if i := strings.LastIndexByte(iri, '#'); i >= 0 {
		return iri[:i+1], iri[i+1:]
	}
	if i := strings.LastIndexByte(iri, '/'); i >= 0 {
		return iri[:i+1], iri[i+1:]
	}
	return iri, ""
}

func sortEntries(es []Entry) {
	sort.Slice(es, func(i, j int) bool {
		bi, ni := Split(string(es[i].IRI))
		bj, nj := Split(string(es[j].IRI))
		if bi != bj {
			return bi < bj
		}
		return ni < nj
	})
}

type nopStore struct{}

func (nopStore) Load() ([]Entry, error) { return nil, nil }
func (nopStore) Save([]Entry) error     { return nil }
func (nopStore) Close() error           { return nil }
