// Package pipeline runs every target institution through the
// discovery, extraction, matching, living cost and prestige stages.
//
// Each stage is a Step that receives the institution's report, consults its
// artifact in the cache and, on a miss or refresh, computes and persists a
// new one. A failing stage still writes an artifact, with its error field
// set and empty values, and the pipeline continues with the next stage.
//
// BatchProcessor runs the pipelines of a batch on a bounded pool of
// workers. Every worker owns one browser session for its whole lifetime.
package pipeline
