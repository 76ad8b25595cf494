// Package load turns ontology files into owl.Ontology views: it detects the
// format, decompresses, decodes into an in-memory store and normalises the
// namespace declarations of every supported syntax into one prefix table.
package load

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/cayleygraph/quad"
	_ "github.com/cayleygraph/quad/jsonld"
	_ "github.com/cayleygraph/quad/nquads"
	"github.com/cayleygraph/quad/voc/rdf"

	"github.com/cayleygraph/owldoc/clog"
	"github.com/cayleygraph/owldoc/graph"
	"github.com/cayleygraph/owldoc/graph/memstore"
	"github.com/cayleygraph/owldoc/owl"
	_ "github.com/cayleygraph/owldoc/quad/ofn"
	_ "github.com/cayleygraph/owldoc/quad/rdfxml"
	_ "github.com/cayleygraph/owldoc/quad/ttl"
	_ "github.com/cayleygraph/owldoc/voc/core"
)

var (
	// ErrEmptyOntology is returned for documents without a single triple.
	ErrEmptyOntology = errors.New("ontology is empty")
	// ErrUnknownFormat is returned when no reader is registered for a file.
	ErrUnknownFormat = errors.New("unknown ontology format")
)

// DefaultNamespace is used for documents that declare no ontology IRI.
const DefaultNamespace = "https://example.com/ontology#"

// PrefixReader is implemented by quad readers that know the namespace
// declarations of their document.
type PrefixReader interface {
	Prefixes() []owl.Prefix
}

// OntologyReader is implemented by quad readers that know the ontology IRI
// from a document header.
type OntologyReader interface {
	OntologyIRI() quad.IRI
}

// Options tune loading. The zero value is usable.
type Options struct {
	// Format forces a quad format by name instead of the file extension.
	Format string
	// DefaultNamespace replaces DefaultNamespace.
	DefaultNamespace string
	// InferPrefixes generates prefixes for http namespaces used in the
	// document but never declared.
	InferPrefixes bool
	// Extra quads are added to every store, e.g. property typings from the
	// concept registry.
	Extra []quad.Quad
}

// File loads the ontology at path.
func File(ctx context.Context, path string, opts *Options) (*owl.Ontology, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file %q: %v", path, err)
	}
	defer f.Close()
	o, err := Read(f, path, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return o, nil
}

// Format returns the quad format used for a file name.
func Format(name string, opts *Options) (*quad.Format, error) {
	var f *quad.Format
	if opts != nil && opts.Format != "" {
		f = quad.FormatByName(opts.Format)
	} else {
		f = quad.FormatByExt(formatExt(name))
	}
	if f == nil || f.Reader == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return f, nil
}

// Read decodes an ontology document. The name selects the format by
// extension.
func Read(r io.Reader, name string, opts *Options) (*owl.Ontology, error) {
	if opts == nil {
		opts = &Options{}
	}
	format, err := Format(name, opts)
	if err != nil {
		return nil, err
	}
	r, err = Decompress(r)
	if err == io.EOF {
		return nil, ErrEmptyOntology
	} else if err != nil {
		return nil, err
	}
	qr := format.Reader(r)
	defer qr.Close()

	qs := memstore.New()
	n, err := quad.Copy(qs, qr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %v", format.Name, err)
	}
	if clog.V(2) {
		clog.Infof("read %d quads from %s as %s", n, name, format.Name)
	}
	if qs.Size() == 0 {
		return nil, ErrEmptyOntology
	}

	var declared []owl.Prefix
	if pr, ok := qr.(PrefixReader); ok {
		declared = pr.Prefixes()
	}
	iri := ontologyIRI(qr, qs)
	ns := string(iri)
	if ns == "" {
		ns = opts.DefaultNamespace
		if ns == "" {
			ns = DefaultNamespace
		}
		clog.Warningf("%s declares no ontology IRI, using namespace %s", name, ns)
	}

	prefixes := append([]owl.Prefix(nil), declared...)
	prefixes = append(prefixes, owl.WellKnownPrefixes()...)
	if opts.InferPrefixes {
		prefixes = append(prefixes, InferPrefixes(qs, ns, prefixes)...)
	}
	qs.WriteQuads(opts.Extra)

	o := owl.New(qs, owl.NewNamespaces(ns, prefixes))
	o.IRI = iri
	return o, nil
}

func ontologyIRI(qr quad.Reader, qs graph.QuadStore) quad.IRI {
	if or, ok := qr.(OntologyReader); ok {
		if iri := or.OntologyIRI(); iri != "" {
			return iri
		}
	}
	var iris []string
	for _, v := range graph.Subjects(qs, quad.IRI(rdf.NS+"type"), quad.IRI(owl.OntologyType)) {
		if iri, ok := v.(quad.IRI); ok {
			iris = append(iris, string(iri))
		}
	}
	if len(iris) == 0 {
		return ""
	}
	sort.Strings(iris)
	return quad.IRI(iris[0])
}

// InferPrefixes returns generated prefixes for http namespaces used in the
// store that no known prefix and not the default namespace covers. A
// namespace is everything up to the last '/' or '#'; its prefix is the
// lower-cased last path segment, numbered when taken.
func InferPrefixes(qs graph.QuadStore, def string, known []owl.Prefix) []owl.Prefix {
	covered := make(map[string]struct{})
	taken := make(map[string]struct{})
	for _, p := range known {
		covered[p.IRI] = struct{}{}
		taken[p.Name] = struct{}{}
	}
	covered[def] = struct{}{}

	seen := make(map[string]struct{})
	var spaces []string
	for _, q := range qs.Quads(nil, nil, nil) {
		for _, v := range []quad.Value{q.Subject, q.Predicate, q.Object} {
			iri, ok := v.(quad.IRI)
			if !ok || !strings.HasPrefix(string(iri), "http") {
				continue
			}
			s := string(iri)
			end := strings.LastIndexAny(s, "/#")
			if end < 0 {
				continue
			}
			ns := s[:end+1]
			if _, ok := covered[ns]; ok {
				continue
			}
			if strings.TrimRight(ns, "/#") == strings.TrimRight(def, "/#") {
				continue
			}
			if _, ok := seen[ns]; !ok {
				seen[ns] = struct{}{}
				spaces = append(spaces, ns)
			}
		}
	}
	sort.Strings(spaces)

	var out []owl.Prefix
	for _, ns := range spaces {
		tail := strings.TrimRight(ns, "/#")
		tail = tail[strings.LastIndexAny(tail, "/#")+1:]
		base := strings.ToLower(tail)
		if base == "" {
			continue
		}
		name := base
		for i := 1; ; i++ {
			if _, ok := taken[name]; !ok {
				break
			}
			name = fmt.Sprintf("%s%d", base, i)
		}
		taken[name] = struct{}{}
		if clog.V(2) {
			clog.Infof("inferred prefix %s: for %s", name, ns)
		}
		out = append(out, owl.Prefix{Name: name, IRI: ns})
	}
	return out
}
