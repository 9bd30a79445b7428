// Package web holds the embedded control panel UI.
package web

import _ "embed"

// IndexHTML is the single-page UI served at "/". It talks to the JSON API
// only; the server keeps no UI state.
//
//go:embed index.html
var IndexHTML []byte
