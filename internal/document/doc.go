// Package document recognizes and reads structured documents.
//
// A structured document is a paginated, text-extractable file such as the
// PDF course plan many universities publish next to their program pages.
package document
