// Package web holds the HTML templates and static assets, embedded so the
// compiled binary is self-contained and handlers can be exercised from tests.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS

//go:embed static/*
var Static embed.FS
