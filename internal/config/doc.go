// Package config provides the run configuration of uniscout: CLI-level
// settings with their defaults, the mission file describing the student
// and the target institutions, API credentials, and the resolution of
// per-institution pipeline settings.
package config
