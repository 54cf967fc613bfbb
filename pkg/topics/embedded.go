package topics

import (
	"embed"
	"io/fs"
)

//go:embed docs/*.md
var docs embed.FS

// Builtin returns the help topics shipped with dirx.
func Builtin() fs.FS {
	sub, err := fs.Sub(docs, "docs")
	if err != nil {
		// docs is a fixed embedded directory
		panic(err)
	}
	return sub
}
