package clicktree

import _ "embed"

// Version is the release of the component, read from the VERSION file.
//
//go:embed VERSION
var Version string
