// Package web holds the embedded browser UI: a single page that lets a
// user pick a model from a grouped dropdown, submit text, and read the
// conversation as chat bubbles.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

// Static returns the embedded UI filesystem rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		// embed guarantees the directory exists at build time
		panic(err)
	}
	return sub
}
