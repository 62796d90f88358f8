package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate and Mission.Validate so that
// callers can use errors.Is while users still get a readable message.
var (
	// ErrNoMission is returned when no mission file path is given.
	ErrNoMission = errors.New("no mission file specified: use --mission")

	// ErrMissionNotFound is returned when the mission file does not exist.
	ErrMissionNotFound = errors.New("mission file not found")

	// ErrNoCourses is returned when the mission lists no current courses,
	// neither inline nor through the curriculum file.
	ErrNoCourses = errors.New("mission has no current courses")

	// ErrNoTargets is returned when the mission lists no target institutions.
	ErrNoTargets = errors.New("mission has no target universities")

	// ErrUnnamedTarget is returned when a target institution has no name.
	ErrUnnamedTarget = errors.New("target university without a name")

	// ErrInvalidLimit is returned when --limit is negative.
	ErrInvalidLimit = errors.New("invalid limit: must be non-negative")

	// ErrInvalidConcurrency is returned when --concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidTimeout is returned when the navigation timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrUnknownBrowser is returned for a --browser value other than chrome or http.
	ErrUnknownBrowser = errors.New("unknown browser: use chrome or http")

	// ErrUnknownFormat is returned for an unsupported --format value.
	ErrUnknownFormat = errors.New("unknown report format")

	// ErrInvalidRequestRate is returned when the request rate is negative.
	// Zero disables pacing.
	ErrInvalidRequestRate = errors.New("invalid request rate: must be non-negative")
)
