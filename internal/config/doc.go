// Package config holds the settings the ingestion core is constructed
// with.
//
// Settings is an explicit struct built once at startup and passed into
// every component; nothing reads configuration through a global. Values
// come from defaults, an optional JSON file, and environment variables,
// in that order of precedence (env wins).
package config
