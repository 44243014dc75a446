package dwengo

import (
	_ "embed"
)

// Version is the release of the path editor, read from the VERSION file.
//
//go:embed VERSION
var Version string
