package matcher

import (
	"encoding/json"
	"strconv"
	"strings"
)

// DefaultReason is used when a verdict carries no reason.
const DefaultReason = "no reason provided"

// Judgement is the classifier's answer for one pair of course names.
// It is either a Verdict or a ParseFailure.
type Judgement interface {
	judgement()
}

// Verdict is a well-formed classifier answer.
type Verdict struct {
	// Equivalent is true when the courses are judged equivalent.
	Equivalent bool
	// Confidence is in [0, 1].
	Confidence float64
	// Reason is a short explanation.
	Reason string
}

// ParseFailure is a classifier answer that could not be understood,
// or no answer at all.
type ParseFailure struct {
	// Raw is the unparsed response text.
	Raw string
	// Cause describes a transport failure. Empty for malformed responses.
	Cause string
}

func (Verdict) judgement()      {}
func (ParseFailure) judgement() {}

// ParseJudgement turns free-text classifier output into a Judgement.
// It never fails: anything that is not a JSON object with the expected
// fields becomes a ParseFailure. The JSON object may be surrounded by prose
// or a code fence.
func ParseJudgement(raw string) Judgement {
	obj, ok := decodeObject(raw)
	if !ok {
		return ParseFailure{Raw: raw}
	}

	eq, ok := asBool(obj["equivalent"])
	if !ok {
		return ParseFailure{Raw: raw}
	}
	conf, ok := asFloat(obj["confidence"])
	if !ok {
		return ParseFailure{Raw: raw}
	}

	reason, _ := obj["reason"].(string)
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultReason
	}

	return Verdict{
		Equivalent: eq,
		Confidence: min(max(conf, 0), 1),
		Reason:     reason,
	}
}

func decodeObject(raw string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &obj); err == nil && obj != nil {
		return obj, true
	}

	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end <= start {
		return nil, false
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// asBool accepts JSON booleans and "true"/"false" strings.
// A missing field is false.
func asBool(v any) (bool, bool) {
	switch b := v.(type) {
	case nil:
		return false, true
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return parsed, err == nil
	default:
		return false, false
	}
}

// asFloat accepts JSON numbers and numeric strings. A missing field is 0.
func asFloat(v any) (float64, bool) {
	switch f := v.(type) {
	case nil:
		return 0, true
	case float64:
		return f, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}
