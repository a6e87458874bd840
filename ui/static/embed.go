// Package static bundles the board's single-page client.
package static

import "embed"

// Files exposes the static assets served by the board server.
//
//go:embed index.html app.js styles.css
var Files embed.FS
