// Package config defines the application configuration structure and
// loading logic. Configuration is sourced from environment variables
// (TASKAI_ prefix) and an optional config.yaml file, with environment
// variables taking precedence.
package config
