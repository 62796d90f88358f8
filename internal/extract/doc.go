// Package extract turns raw page or document text into candidate course names.
//
// Extraction runs in two passes. Lines applies per-source filters: line
// segmentation, boilerplate rejection, and a case-insensitive dedupe.
// FinalFilter runs once over the lines of every source of an institution and
// removes the navigation chrome that survives the first pass because
// institutional sites put it at the same heading level as course titles.
//
// Every function in this package is pure and safe for concurrent use.
package extract
