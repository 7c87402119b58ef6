// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry points are [GetStructuredConfig] for the custodian server
// and [GetClientConfig] for the device-side vault client.
//
// Every numeric constant of the session and vault design — idle thresholds,
// tick interval, capture duration cap, record TTL, PBKDF2 iteration count —
// is a configuration field rather than a literal, so that the accelerated
// debug-session mode and tests can shrink them.
package config
