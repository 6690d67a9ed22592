// Package config defines the format-agnostic model of framework declarations
// and the Loader interface that format adapters implement.
//
// The `config.Model` is the single source of truth for the `app` package.
// Concrete loaders for HCL and YAML live in `hcl_adapter` and `yaml_adapter`.
package config
