// Package core imports all well-known RDF vocabularies.
package core

import (
	_ "github.com/cayleygraph/owldoc/owl"
	_ "github.com/cayleygraph/owldoc/voc/dc"
	_ "github.com/cayleygraph/owldoc/voc/dcterms"
	_ "github.com/cayleygraph/owldoc/voc/skos"
)
