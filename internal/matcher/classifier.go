package matcher

import (
	"context"
	"fmt"
)

// Classifier judges whether two course names denote equivalent courses.
type Classifier interface {
	Classify(ctx context.Context, a, b string) Judgement
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(ctx context.Context, a, b string) Judgement

// Classify calls f(ctx, a, b).
func (f ClassifierFunc) Classify(ctx context.Context, a, b string) Judgement {
	return f(ctx, a, b)
}

// Completer sends a prompt to a language model and returns its text reply.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

const equivalenceSystemPrompt = "You are an academic advisor who evaluates course equivalence " +
	"for university transfer credit recognition. Answer ONLY with valid JSON."

const equivalencePromptTemplate = `Decide whether these two university courses are probably equivalent for credit transfer.
Course names may differ between universities and languages.

Course A: %q
Course B: %q

Return JSON with exactly this schema:
{
  "equivalent": true or false,
  "confidence": 0.0 to 1.0,
  "reason": "short sentence"
}

Rules:
- If the courses are clearly different, equivalent=false.
- If they cover the same core subject, equivalent=true.
- Use confidence >= 0.8 only when it is very clear.`

// LLMClassifier asks a language model for an equivalence verdict.
type LLMClassifier struct {
	completer Completer
}

// NewLLMClassifier creates a classifier backed by the given completer.
func NewLLMClassifier(c Completer) *LLMClassifier {
	return &LLMClassifier{completer: c}
}

// Classify implements Classifier.
func (c *LLMClassifier) Classify(ctx context.Context, a, b string) Judgement {
	out, err := c.completer.Complete(ctx, equivalenceSystemPrompt, fmt.Sprintf(equivalencePromptTemplate, a, b))
	if err != nil {
		return ParseFailure{Cause: err.Error()}
	}
	return ParseJudgement(out)
}
