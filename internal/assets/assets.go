package assets

import (
	"embed"
	"io/fs"

	"golang.org/x/image/font/gofont/gobold"
)

// FontTTF is the default dial face. A different font file can be supplied
// through configuration.
var FontTTF = gobold.TTF

//go:embed web
var webFS embed.FS

// WebUI is an embedded filesystem rooted at internal/assets/web.
// It contains the control page served by the web server.
var WebUI fs.FS

func init() {
	// Embed paths include the leading directory; strip it for serving at '/'.
	sub, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}
	WebUI = sub
}
