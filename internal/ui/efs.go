package ui

import "embed"

// Files holds the page templates and static assets.
//
//go:embed "html" "static"
var Files embed.FS
