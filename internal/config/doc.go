// Package config provides configuration management for the synapse CLI.
//
// # Overview
//
// The config package uses Viper to load configuration from YAML files and
// environment variables. It provides a type-safe configuration structure
// with validation, default values, and automatic file creation.
//
// # Configuration File
//
// The configuration is stored at ~/.synapse/config.yaml and is automatically
// created with sensible defaults on first use. The file structure mirrors
// the Go structs defined in this package.
//
// # Environment Variables
//
// All configuration values can be overridden using environment variables
// with the SYNAPSE_ prefix. Nested fields are separated by underscores.
//
// Examples:
//   - SYNAPSE_CATALOG=/srv/catalogs/world.yaml
//   - SYNAPSE_LOGGING_LEVEL=debug
//   - SYNAPSE_TRACE_ENABLED=true
package config
