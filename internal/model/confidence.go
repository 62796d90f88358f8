package model

import "fmt"

// Confidence grades how much an estimate can be trusted.
//
// Design decision: Like the severity levels of a finding, confidence is an
// ordered enum so callers can compare grades. It marshals as its upper-case
// name so artifacts stay readable.
type Confidence int

const (
	// ConfidenceLow means the value came from a static fallback table.
	ConfidenceLow Confidence = iota
	// ConfidenceMedium means the value was partially observed.
	ConfidenceMedium
	// ConfidenceHigh means the value was fully observed from a live source.
	ConfidenceHigh
)

// String returns the upper-case name of the grade.
func (c Confidence) String() string {
	switch c {
	case ConfidenceLow:
		return "LOW"
	case ConfidenceMedium:
		return "MEDIUM"
	case ConfidenceHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Confidence) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Confidence) UnmarshalText(b []byte) error {
	switch string(b) {
	case "LOW":
		*c = ConfidenceLow
	case "MEDIUM":
		*c = ConfidenceMedium
	case "HIGH":
		*c = ConfidenceHigh
	default:
		return fmt.Errorf("unknown confidence %q", string(b))
	}
	return nil
}
