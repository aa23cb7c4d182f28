// Package config provides environment-based configuration.
//
// Loads from a .env file (godotenv) when present, validates required fields,
// and applies defaults for the rest.
package config
