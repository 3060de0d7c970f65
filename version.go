package ratchet

import _ "embed"

// Version is the release version, kept in the VERSION file at the repo root.
// Trailing whitespace included; callers display it with strings.TrimSpace.
//
//go:embed VERSION
var Version string
