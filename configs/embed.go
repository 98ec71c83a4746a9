// Package configs provides the embedded configuration template for
// stdvkb.
//
// The template is embedded at build time with go:embed so it ships
// inside the binary. It is written to disk by `stdvkb config init` and
// documents every tunable with its default value.
package configs

import _ "embed"

// EngineConfigTemplate is the annotated engine configuration template
// created by `stdvkb config init`.
//
//go:embed engine.example.yaml
var EngineConfigTemplate string
