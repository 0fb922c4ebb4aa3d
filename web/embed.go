// Package web embeds the console's page templates and static assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static templates
var content embed.FS

func sub(dir string) fs.FS {
	f, err := fs.Sub(content, dir)
	if err != nil {
		// Only reachable if the embed directive above is changed.
		panic("web: missing embedded directory " + dir + ": " + err.Error())
	}
	return f
}

// StaticFS returns the stylesheet and other static files.
func StaticFS() fs.FS { return sub("static") }

// TemplatesFS returns the html/template sources; layout.html wraps every
// other page.
func TemplatesFS() fs.FS { return sub("templates") }
