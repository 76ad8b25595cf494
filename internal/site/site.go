// Package site runs one documentation build. It loads every ontology
// source of the docs directory and writes class pages, class diagrams,
// pattern pages and the index, then updates the mkdocs nav and the concept
// registry.
package site

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/owldoc/clog"
	"github.com/cayleygraph/owldoc/diagram"
	"github.com/cayleygraph/owldoc/diagram/dot"
	"github.com/cayleygraph/owldoc/docs"
	"github.com/cayleygraph/owldoc/internal/config"
	"github.com/cayleygraph/owldoc/internal/load"
	"github.com/cayleygraph/owldoc/internal/metrics"
	"github.com/cayleygraph/owldoc/owl"
	"github.com/cayleygraph/owldoc/registry"
)

// ErrNoSources is returned when no source pattern matches a file.
var ErrNoSources = errors.New("no ontology source files found")

// Output directories below the docs directory.
const (
	ClassesDir  = "classes"
	DiagramsDir = "diagrams"
)

// Report summarizes a run.
type Report struct {
	// Files is the number of ontology files loaded.
	Files int
	// Classes is the number of class pages written.
	Classes int
	// Failed is the number of classes whose diagram or page failed.
	Failed      int
	Diagnostics []string
}

// Sources expands the source patterns under the docs directory. The paths
// are relative to it, slash separated and sorted.
func Sources(cfg *config.Config) ([]string, error) {
	fsys := os.DirFS(cfg.DocsDir)
	seen := make(map[string]struct{})
	var out []string
	for _, pat := range cfg.Sources {
		matches, err := doublestar.Glob(fsys, pat)
		if err != nil {
			return nil, fmt.Errorf("source pattern %q: %w", pat, err)
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			if fi, err := fs.Stat(fsys, m); err != nil || fi.IsDir() {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoSources
	}
	sort.Strings(out)
	return out, nil
}

// OntologyName is the name qualifying pages of a source file: its base
// name without compression and format extensions.
func OntologyName(file string) string {
	name := path.Base(filepath.ToSlash(file))
	for _, ext := range []string{".gz", ".bz2"} {
		name = strings.TrimSuffix(name, ext)
	}
	return strings.TrimSuffix(name, path.Ext(name))
}

type source struct {
	file    string
	name    string
	o       *owl.Ontology
	classes []*owl.Class
	links   map[quad.IRI]docs.Link
	// patterns by name, in the order they were first seen.
	patterns []*docs.PatternPage
}

type generator struct {
	ctx    context.Context
	cfg    *config.Config
	diag   *Diagnostics
	render *dot.Renderer
	multi  bool

	// pages links every documented class; the first source documenting an
	// IRI owns it.
	pages    map[quad.IRI]docs.Link
	abstract map[quad.IRI]bool
	report   Report
}

// Generate runs a full build. Only a run without sources fails; every
// other problem is reported as a diagnostic and the run continues.
func Generate(ctx context.Context, cfg *config.Config) (*Report, error) {
	start := time.Now()
	files, err := Sources(cfg)
	if err != nil {
		return nil, err
	}
	g := &generator{
		ctx:      ctx,
		cfg:      cfg,
		diag:     &Diagnostics{},
		pages:    make(map[quad.IRI]docs.Link),
		abstract: make(map[quad.IRI]bool),
	}
	if cfg.Render {
		g.render = &dot.Renderer{Binary: cfg.DotBinary, Formats: cfg.Formats}
	}

	reg, err := registry.Open(cfg.RegistryBackend, cfg.RegistryPath)
	if err != nil {
		g.diag.Addf("concept registry: %v", err)
		reg, _ = registry.Open(config.RegistryNone, "")
	}
	defer reg.Close()

	srcs, err := g.load(files, reg)
	if err != nil {
		return nil, err
	}
	g.multi = len(srcs) > 1
	g.collect(srcs)

	for _, s := range srcs {
		for _, c := range s.classes {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			g.class(s, c)
		}
		g.writePatterns(s)
		reg.Merge(registry.Collect(s.o))
	}
	g.writeIndex(srcs)

	if err := reg.Save(); err != nil {
		g.diag.Addf("concept registry: %v", err)
	}
	metrics.RunFinished(start)
	if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
		g.diag.Addf("metrics: %v", err)
	}

	g.report.Files = len(srcs)
	g.report.Diagnostics = g.diag.Lines()
	clog.Infof("documented %d classes from %d files in %v (%d failed, %d diagnostics)",
		g.report.Classes, g.report.Files, time.Since(start).Round(time.Millisecond), g.report.Failed, g.diag.Len())
	return &g.report, nil
}

func (g *generator) load(files []string, reg *registry.Registry) ([]*source, error) {
	opts := &load.Options{
		DefaultNamespace: g.cfg.DefaultNamespace,
		InferPrefixes:    g.cfg.InferPrefixes,
		Extra:            reg.TypeQuads(),
	}
	var srcs []*source
	for _, file := range files {
		o, err := load.File(g.ctx, g.cfg.Path(file), opts)
		if cerr := g.ctx.Err(); cerr != nil {
			return nil, cerr
		}
		if err != nil {
			clog.Errorf("could not load ontology: %v", err)
			metrics.FileFailed()
			g.diag.Addf("could not load ontology: %v", err)
			continue
		}
		metrics.FileLoaded(o.Store.Size())
		o.Sink = fileSink{d: g.diag, file: file}
		clog.Infof("loaded %s (%d triples)", file, o.Store.Size())
		srcs = append(srcs, &source{
			file:    file,
			name:    OntologyName(file),
			o:       o,
			classes: o.LocalClasses(),
			links:   make(map[quad.IRI]docs.Link),
		})
	}
	return srcs, nil
}

// collect fills the run-wide tables before any page is written, so that
// links and abstract flags cross file boundaries.
func (g *generator) collect(srcs []*source) {
	owners := make(map[string]int)
	for _, s := range srcs {
		for _, c := range s.classes {
			owners[c.QName]++
		}
	}
	for _, s := range srcs {
		for _, c := range s.o.Classes() {
			if c.Abstract() {
				g.abstract[c.Identifier] = true
			}
		}
		patterns := make(map[string]*docs.PatternPage)
		for _, c := range s.classes {
			display := docs.InsertSpaces(c.QName)
			if owners[c.QName] > 1 {
				display += " (" + s.name + ")"
			}
			l := docs.Link{
				Name:        c.QName,
				Display:     display,
				Target:      docs.BaseName(s.name, c.QName, g.multi) + ".md",
				Description: c.Description(),
			}
			s.links[c.Identifier] = l
			if _, ok := g.pages[c.Identifier]; !ok {
				g.pages[c.Identifier] = l
			}
			if name, ok := c.Pattern(); ok && name != "" {
				p := patterns[name]
				if p == nil {
					p = &docs.PatternPage{Name: name}
					patterns[name] = p
					s.patterns = append(s.patterns, p)
				}
				p.Members = append(p.Members, l)
			}
		}
	}
}

// linker resolves display names of ontology s to documented pages.
func (g *generator) linker(s *source) docs.Linker {
	return func(name string) (docs.Link, bool) {
		iri, ok := s.o.NS.Expand(name)
		if !ok {
			iri = name
		}
		if l, ok := s.links[quad.IRI(iri)]; ok {
			return l, true
		}
		l, ok := g.pages[quad.IRI(iri)]
		return l, ok
	}
}

// class writes the diagram and page of one class. Failures are contained
// to the class.
func (g *generator) class(s *source, c *owl.Class) {
	link := g.linker(s)
	base := strings.TrimSuffix(s.links[c.Identifier].Target, ".md")

	diagramBase := base
	if err := g.diagram(s, c, base, link); err != nil {
		clog.Errorf("diagram of %s in %s: %v", c.QName, s.file, err)
		g.diag.Addf("%s: diagram of %s: %v", s.file, c.QName, err)
		diagramBase = ""
	}

	p := docs.NewClassPage(c, link, diagramBase)
	p.ImageFormat = g.imageFormat()
	err := docs.WriteFile(g.cfg.Path(ClassesDir, base+".md"), func(w io.Writer) error {
		return docs.WriteClassPage(w, p)
	})
	if err != nil {
		clog.Errorf("page of %s in %s: %v", c.QName, s.file, err)
		g.diag.Addf("%s: page of %s: %v", s.file, c.QName, err)
		g.report.Failed++
		metrics.ClassFailed()
		return
	}
	if diagramBase == "" {
		g.report.Failed++
		metrics.ClassFailed()
	} else {
		metrics.ClassDone()
	}
	g.report.Classes++
}

func (g *generator) diagram(s *source, c *owl.Class, base string, link docs.Linker) error {
	timer := metrics.DiagramTimer()
	gr, err := diagram.Build(g.ctx, c, &diagram.Options{
		Ignore: g.cfg.IgnoreClasses,
		Link: func(name string) string {
			if l, ok := link(name); ok {
				return "../" + ClassesDir + "/" + strings.TrimSuffix(l.Target, ".md") + "/"
			}
			return ""
		},
		Abstract: func(iri quad.IRI) bool { return g.abstract[iri] },
	})
	timer.ObserveDuration()
	if err != nil {
		return err
	}
	dotFile := g.cfg.Path(DiagramsDir, base+".dot")
	err = docs.WriteFile(dotFile, func(w io.Writer) error {
		return dot.Encode(w, gr, &dot.Options{Rankdir: g.cfg.Rankdir})
	})
	if err != nil {
		return err
	}
	if g.render == nil {
		return nil
	}
	files, err := g.render.Render(g.ctx, dotFile)
	metrics.Rendered(files)
	if errors.Is(err, dot.ErrNoRenderer) {
		g.diag.Addf("%v; diagrams are left as DOT files", err)
		g.render = nil
		return nil
	}
	return err
}

// imageFormat is the format embedded in pages: svg when it is rendered,
// else the first rendered format.
func (g *generator) imageFormat() string {
	for _, f := range g.cfg.Formats {
		if f == "svg" {
			return f
		}
	}
	if len(g.cfg.Formats) > 0 {
		return g.cfg.Formats[0]
	}
	return "svg"
}

// writePatterns writes the pattern pages of s. A pattern page replaces the
// page of a class with the same name.
func (g *generator) writePatterns(s *source) {
	for _, p := range s.patterns {
		if iri, ok := s.o.NS.Expand(p.Name); ok {
			if c, ok := s.links[quad.IRI(iri)]; ok {
				p.Description = c.Description
			}
		}
		target := docs.BaseName(s.name, p.Name, g.multi) + ".md"
		err := docs.WriteFile(g.cfg.Path(ClassesDir, target), func(w io.Writer) error {
			return docs.WritePatternPage(w, p)
		})
		if err != nil {
			g.diag.Addf("%s: pattern %s: %v", s.file, p.Name, err)
		}
	}
}

func (g *generator) writeIndex(srcs []*source) {
	if len(srcs) == 0 {
		return
	}
	var onts []docs.Ontology
	members := make(map[string][]docs.Link)
	for _, s := range srcs {
		ont := docs.Ontology{
			Name:        s.name,
			Title:       s.o.Title(),
			Description: s.o.Description(),
			File:        s.file,
		}
		grouped := make(map[string]struct{})
		for _, p := range s.patterns {
			target := docs.BaseName(s.name, p.Name, g.multi) + ".md"
			grouped[target] = struct{}{}
			ont.Patterns = append(ont.Patterns, docs.Link{Name: p.Name, Display: docs.InsertSpaces(p.Name), Target: target})
			for _, m := range p.Members {
				grouped[m.Target] = struct{}{}
			}
			members[target] = p.Members
		}
		for _, c := range s.classes {
			l := s.links[c.Identifier]
			if _, ok := grouped[l.Target]; !ok {
				ont.Classes = append(ont.Classes, l)
			}
		}
		onts = append(onts, ont)
	}

	title, err := docs.ReadmeTitle(filepath.Join(filepath.Dir(filepath.Clean(g.cfg.DocsDir)), "README.md"))
	if err != nil {
		g.diag.Addf("README: %v", err)
	}
	err = docs.WriteFile(g.cfg.Path("index.md"), func(w io.Writer) error {
		return docs.WriteIndex(w, title, onts)
	})
	if err != nil {
		g.diag.Addf("index: %v", err)
	}

	if err := docs.UpdateNav(g.cfg.MkDocs, docs.Nav(onts, members)); errors.Is(err, fs.ErrNotExist) {
		g.diag.Addf("%s not found, nav not updated", g.cfg.MkDocs)
	} else if err != nil {
		g.diag.Addf("nav: %v", err)
	}
}
