// Package config loads runtime configuration for the SurLink CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file (see parseFile) selected via flags: -c or -config.
//     JSON by default, YAML when the name ends in .yaml or .yml.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   classification API base URL
//	-e string   explanation API base URL
//	-i int      status check interval (seconds)
//	-s string   store driver (sqlite | postgres)
//	-d string   store DSN
//	-v          verbose logging
//
// # File schema
//
// Durations are timex.Duration values, so they can be strings like "30s" or
// integer nanoseconds:
//
//	{
//	  "api_url": "https://classifier.example",
//	  "explainer_url": "https://explainer.example",
//	  "status_check_interval": "30s",
//	  "store_driver": "sqlite",
//	  "s3_bucket": "avatars"
//	}
//
// Note: This package does not read environment variables directly; use the
// config file or flags to configure values.
package config
