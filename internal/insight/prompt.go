package insight

import (
	"fmt"
	"strings"

	"github.com/abhisek/persona/internal/quiz"
	"github.com/abhisek/persona/internal/store"
)

const systemPrompt = `You explain the result of a short learning-style quiz.

Rules:
- The result is one of: Analytical Learner, Intuitive Learner, Visual Learner, Practical Learner.
- Never contradict or re-score the given result.
- Speak directly to the learner in a warm, plain tone. No jargon.
- Ground the description in the answers they actually gave.
- Tips must be specific actions they can try this week.`

// buildUserMessage lists the result and every answered question in order.
func buildUserMessage(set *quiz.QuestionSet, rec store.ResultRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Result: %s\n\nAnswers:\n", rec.ResultSummary)

	for _, q := range set.Questions() {
		label, ok := rec.Answers[q.Index]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%d. %s\n   -> %s\n", q.Index+1, q.Prompt, label)
	}
	return strings.TrimRight(b.String(), "\n")
}
