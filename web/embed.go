// Package web embeds the built frontend bundle.
package web

import (
	"embed"
	"io/fs"
)

//go:embed dist
var dist embed.FS

// Dist returns the bundle rooted at its index.html.
func Dist() (fs.FS, error) {
	return fs.Sub(dist, "dist")
}
