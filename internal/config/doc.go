// Package config provides centralized configuration management for the
// holiday-property dashboard backend.
//
// Configuration is loaded from environment variables with the LOMA prefix
// and optionally merged with a YAML config file. Environment variables take
// precedence. The package also owns the dataset schema constants (column
// names, shoreline codes, the unknown-region sentinel) so that they are
// spelled out in exactly one place.
package config
