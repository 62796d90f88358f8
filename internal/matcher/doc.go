// Package matcher compares the user's courses against candidate course names
// extracted from an institution's sources.
//
// Each course is scored against every candidate with a token-set similarity.
// Clear matches are accepted on similarity alone, ambiguous ones are escalated
// to a language-model classifier guarded by a confidence threshold, and the
// rest are rejected. Matching never fails: classifier errors and unparseable
// verdicts become non-matches with a diagnostic reason.
package matcher
