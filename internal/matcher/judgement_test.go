package matcher

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseJudgement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want Judgement
	}{
		{
			name: "plain JSON verdict",
			raw:  `{"equivalent": true, "confidence": 0.85, "reason": "same core subject"}`,
			want: Verdict{Equivalent: true, Confidence: 0.85, Reason: "same core subject"},
		},
		{
			name: "verdict inside a code fence",
			raw:  "```json\n{\"equivalent\": false, \"confidence\": 0.4, \"reason\": \"different topics\"}\n```",
			want: Verdict{Equivalent: false, Confidence: 0.4, Reason: "different topics"},
		},
		{
			name: "confidence is clamped to one",
			raw:  `{"equivalent": true, "confidence": 3, "reason": "sure"}`,
			want: Verdict{Equivalent: true, Confidence: 1, Reason: "sure"},
		},
		{
			name: "negative confidence is clamped to zero",
			raw:  `{"equivalent": false, "confidence": -2, "reason": "no"}`,
			want: Verdict{Equivalent: false, Confidence: 0, Reason: "no"},
		},
		{
			name: "missing reason gets a default",
			raw:  `{"equivalent": true, "confidence": 0.9}`,
			want: Verdict{Equivalent: true, Confidence: 0.9, Reason: DefaultReason},
		},
		{
			name: "string fields are accepted",
			raw:  `{"equivalent": "true", "confidence": "0.75", "reason": "ok"}`,
			want: Verdict{Equivalent: true, Confidence: 0.75, Reason: "ok"},
		},
		{
			name: "prose is a parse failure",
			raw:  "I think they are equivalent.",
			want: ParseFailure{Raw: "I think they are equivalent."},
		},
		{
			name: "wrong field type is a parse failure",
			raw:  `{"equivalent": [1], "confidence": 0.9}`,
			want: ParseFailure{Raw: `{"equivalent": [1], "confidence": 0.9}`},
		},
		{
			name: "empty output is a parse failure",
			raw:  "",
			want: ParseFailure{Raw: ""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, ParseJudgement(tt.raw)); diff != "" {
				t.Errorf("ParseJudgement() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("never panics on arbitrary input", func(t *testing.T) {
		t.Parallel()

		inputs := []string{"{", "}", "}{", "{}", "null", "[]", strings.Repeat("{", 1000), `{"equivalent": null}`}
		for _, in := range inputs {
			_ = ParseJudgement(in)
		}
	})
}
