// Package config loads, defaults, validates, and watches the dirgate
// configuration.
//
// Configuration comes from a YAML file plus DIRGATE_* environment variable
// overrides; environment variables always win. Tenant, client, and secret
// identifiers are required at startup; their absence is a fatal condition
// reported by Validate, never a per-call error.
//
// When watch.enabled is set, the config file is monitored with fsnotify and
// changes to the retry policy and log level take effect without a restart.
package config
