// Package web holds the compiled single-page frontend, embedded so the server
// binary is self-contained.
package web

import "embed"

//go:embed static
var Static embed.FS
