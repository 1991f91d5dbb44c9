// Package web embeds the page templates and static assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// Templates is the template directory with layout.html at its root.
func Templates() fs.FS {
	return mustSub(templateFiles, "templates")
}

// Static is served under /static/.
func Static() fs.FS {
	return mustSub(staticFiles, "static")
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
