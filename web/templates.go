// Package web carries the embedded server-rendered view templates and
// static assets.
package web

import "embed"

//go:embed templates
var Templates embed.FS

//go:embed static
var Static embed.FS
