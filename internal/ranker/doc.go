// Package ranker scores discovered URLs by how likely they are to be an
// official curriculum page.
//
// Scoring is additive and deterministic: a preferred-domain bonus, fixed
// bonuses for curriculum keywords in the URL, a bonus for structured
// documents, a small thematic bonus, and penalties for news and blog noise.
// Every contribution is recorded as a human-readable reason for audit.
package ranker
