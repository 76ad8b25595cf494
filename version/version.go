// Package version holds the build identity of owldoc.
package version

import "fmt"

var (
	Version = "0.3.0"

	// git hash should be filled by:
	// 	go build -ldflags="-X github.com/cayleygraph/owldoc/version.GitHash=xxxx"

	GitHash   = "dev snapshot"
	BuildDate string
)

// String is the one-line version banner.
func String() string {
	s := fmt.Sprintf("owldoc %s (%s)", Version, GitHash)
	if BuildDate != "" {
		s += " built " + BuildDate
	}
	return s
}
