// Copyright 2017 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package owl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cayleygraph/owldoc/clog"
	"github.com/cayleygraph/owldoc/voc"
)

// Prefix is a namespace declaration of an ontology document.
type Prefix struct {
	// Name is the prefix without the colon. The empty name is the ":" prefix.
	Name string
	IRI  string
}

// WellKnownPrefixes returns the registered vocabularies as a prefix table.
func WellKnownPrefixes() []Prefix {
	list := voc.List()
	out := make([]Prefix, 0, len(list))
	for _, ns := range list {
		out = append(out, Prefix{Name: ns.Name(), IRI: ns.Full})
	}
	return out
}

// Namespaces turns IRIs into the short names used in pages and diagrams.
type Namespaces struct {
	// Default is the ontology namespace. Names inside it lose their prefix.
	Default  string
	prefixes []Prefix
	warned   clog.Once
}

// NewNamespaces builds a resolver. When a prefix name is declared twice the
// first declaration wins.
func NewNamespaces(def string, prefixes []Prefix) *Namespaces {
	ns := &Namespaces{Default: def}
	seen := make(map[string]struct{}, len(prefixes))
	for _, p := range prefixes {
		p.Name = strings.TrimSuffix(p.Name, ":")
		if _, ok := seen[p.Name]; ok || p.IRI == "" {
			continue
		}
		seen[p.Name] = struct{}{}
		ns.prefixes = append(ns.prefixes, p)
	}
	sort.SliceStable(ns.prefixes, func(i, j int) bool {
		a, b := ns.prefixes[i], ns.prefixes[j]
		if la, lb := len(normBase(a.IRI)), len(normBase(b.IRI)); la != lb {
			return la > lb
		}
		return a.Name < b.Name
	})
	return ns
}

// Prefixes returns the prefix table, longest base first.
func (ns *Namespaces) Prefixes() []Prefix {
	return append([]Prefix(nil), ns.prefixes...)
}

// QName returns the display name of an IRI. IRIs outside every known
// namespace are returned unchanged and logged once.
func (ns *Namespaces) QName(iri string) string {
	name, ok := ns.Resolve(iri)
	if !ok {
		ns.warned.Warningf(iri, "no namespace prefix for <%s>, using the full IRI", iri)
	}
	return name
}

// Resolve is QName without logging. It reports whether a namespace matched.
func (ns *Namespaces) Resolve(iri string) (string, bool) {
	if local, ok := localName(iri, ns.Default); ok {
		return local, true
	}
	for _, p := range ns.prefixes {
		local, ok := localName(iri, p.IRI)
		if !ok {
			continue
		}
		if p.Name == "" {
			return local, true
		}
		return p.Name + ":" + local, true
	}
	return iri, false
}

// InDefault reports whether iri belongs to the default namespace.
func (ns *Namespaces) InDefault(iri string) bool {
	_, ok := localName(iri, ns.Default)
	return ok
}

// Expand is the inverse of Resolve for names under a base ending with a
// separator, or joined to its base with '#'.
func (ns *Namespaces) Expand(name string) (string, bool) {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		pref, local := name[:i], name[i+1:]
		for _, p := range ns.prefixes {
			if p.Name == pref {
				return join(p.IRI, local), true
			}
		}
		return name, false
	}
	if ns.Default != "" {
		return join(ns.Default, name), true
	}
	for _, p := range ns.prefixes {
		if p.Name == "" {
			return join(p.IRI, name), true
		}
	}
	return name, false
}

func join(base, local string) string {
	if base != "" && isSep(base[len(base)-1]) {
		return base + local
	}
	return base + "#" + local
}

func isSep(c byte) bool {
	switch c {
	case '/', '#', ':', '_':
		return true
	}
	return false
}

// normBase strips trailing '/' and '#', which are not significant when
// comparing a base against an IRI.
func normBase(base string) string {
	return strings.TrimRight(base, "/#")
}

func localName(iri, base string) (string, bool) {
	if base == "" {
		return "", false
	}
	if isSep(base[len(base)-1]) && len(iri) > len(base) && strings.HasPrefix(iri, base) {
		return iri[len(base):], true
	}
	nb := normBase(base)
	if nb == "" || len(iri) <= len(nb)+1 || !strings.HasPrefix(iri, nb) {
		return "", false
	}
	if c := iri[len(nb)]; c != '/' && c != '#' {
		return "", false
	}
	return iri[len(nb)+1:], true
}

// Slug maps a display name to an identifier made of [A-Za-z0-9_]. The
// mapping is injective: '_' becomes "__", ':' becomes "_c" and any other
// byte becomes "_xHH".
func Slug(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == '_':
			b.WriteString("__")
		case c == ':':
			b.WriteString("_c")
		default:
			fmt.Fprintf(&b, "_x%02X", c)
		}
	}
	return b.String()
}
