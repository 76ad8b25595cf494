// Package docs writes the MkDocs side of the documentation: class and
// pattern pages, the index page and the nav section of mkdocs.yml.
package docs

import (
	"regexp"
	"sort"
	"strings"
)

var (
	reAcronym = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	reCamel   = regexp.MustCompile(`([a-z\d])([A-Z])`)
)

// InsertSpaces splits a camel-case name into words for display:
// "HTTPRequestLine" becomes "HTTP Request Line".
func InsertSpaces(name string) string {
	name = reAcronym.ReplaceAllString(name, "$1 $2")
	return reCamel.ReplaceAllString(name, "$1 $2")
}

// BaseName is the file name, without extension, shared by the page and the
// diagram of a class. Runs over several ontologies qualify it with the
// ontology name.
func BaseName(ontology, class string, multi bool) string {
	class = fileSafe(class)
	if multi && ontology != "" {
		return ontology + "__" + class
	}
	return class
}

var fileReplacer = strings.NewReplacer(":", "_", "/", "_", "\\", "_", " ", "_")

func fileSafe(name string) string { return fileReplacer.Replace(name) }

// Link points at a documented class page.
type Link struct {
	Name string
	// Display is the name shown to readers, qualified with the ontology
	// when several ontologies define the name.
	Display string
	// Target is the page file name inside the classes directory.
	Target      string
	Description string
}

// Linker returns the page of a class by display name, if it is documented.
type Linker func(name string) (Link, bool)

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>")

func cell(s string) string { return cellEscaper.Replace(strings.TrimSpace(s)) }

// sortBy sorts case-insensitively on key, keeping the order of equal keys.
func sortBy[T any](s []T, key func(T) string) {
	sort.SliceStable(s, func(i, j int) bool {
		return strings.ToLower(key(s[i])) < strings.ToLower(key(s[j]))
	})
}
