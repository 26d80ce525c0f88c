package main

import (
	"embed"
	"io/fs"
)

// the status page, served minified by internal/server
//
//go:embed frontend
var frontendFiles embed.FS

func getFrontendFS() fs.FS {
	sub, err := fs.Sub(frontendFiles, "frontend")
	if err != nil {
		panic(err)
	}
	return sub
}
