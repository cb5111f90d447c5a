package dynamicform

import (
	"embed"
	"io/fs"
)

// RuntimeScriptName is the file name of the browser runtime inside AssetsFS.
const RuntimeScriptName = "dynamicform.js"

//go:embed assets/*.js
var embeddedAssets embed.FS

// AssetsFS exposes the browser runtime so applications can serve it next to
// the rendered widgets. Mount it where widget.WithAssetURL points, by
// default:
//
//	r.Handle("/assets/dynamicform/*",
//	  http.StripPrefix("/assets/dynamicform/",
//	    http.FileServerFS(dynamicform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
