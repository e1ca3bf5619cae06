package quiz

import "sort"

// precedence is the fixed tie-break order. The first category present in
// the tie set wins; Practical is the fallback.
var precedence = []struct {
	category Category
	result   Personality
}{
	{CategoryAnalytical, AnalyticalLearner},
	{CategoryIntuitive, IntuitiveLearner},
	{CategoryVisual, VisualLearner},
}

// Score maps answers to a personality: the most frequent labels form the
// tie set and the highest-precedence category among them decides.
func (s *QuestionSet) Score(answers Answers) Personality {
	dominant := DominantLabels(answers)

	for _, p := range precedence {
		for _, label := range dominant {
			if s.CategoryOf(label) == p.category {
				return p.result
			}
		}
	}
	return PracticalLearner
}

// DominantLabels returns the labels that share the highest occurrence count,
// sorted for stable output.
func DominantLabels(answers Answers) []string {
	counts := make(map[string]int, len(answers))
	for _, label := range answers {
		counts[label]++
	}

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	var out []string
	for label, c := range counts {
		if c == maxCount {
			out = append(out, label)
		}
	}
	sort.Strings(out)
	return out
}
