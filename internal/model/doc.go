// Package model defines the core data structures used throughout uniscout.
//
// This package contains the following main types:
//   - Institution: A transfer destination read from the mission file
//   - CandidateURL: A ranked discovery result
//   - FetchTelemetryEntry: The outcome of one fetch attempt
//   - MatchNote: The verdict for one of the user's courses
//   - InstitutionReport: The per-institution accumulator passed through pipeline steps
//   - Comparison: The ranked bundle consumed by report writers
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The pipeline, the cache, and the report writers all need these
// types, so centralizing them prevents import cycles.
//
// Every artifact type is serializable to JSON because artifacts are persisted
// as one JSON file per institution and stage.
package model
