// Package configs provides embedded configuration templates for fido.
//
// Templates are embedded at build time, so `fido config init` works from
// source builds and binary releases alike.
//
// Configuration hierarchy (see internal/config/config.go Load()):
//  1. Hardcoded defaults (internal/config/config.go NewConfig())
//  2. User config (~/.config/fido/config.yaml)
//  3. The file given with --config
//  4. Environment variables (FIDO_*)
//
// The template must stay loadable by config.Load; a test checks this.
package configs

import _ "embed"

// UserConfigTemplate is written by `fido config init` at
// ~/.config/fido/config.yaml. Every value matches the built-in default.
//
//go:embed user-config.example.yaml
var UserConfigTemplate string
