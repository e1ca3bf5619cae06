package quiz

import (
	"testing"
)

func defaultSet(t *testing.T) *QuestionSet {
	t.Helper()
	set, err := DefaultQuestionSet()
	if err != nil {
		t.Fatalf("default set: %v", err)
	}
	return set
}

func TestScore(t *testing.T) {
	set := defaultSet(t)

	tests := []struct {
		name    string
		answers Answers
		want    Personality
	}{
		{
			name: "three-way tie resolves to analytical",
			answers: Answers{
				0: "Reading and writing",
				1: "Analyze details methodically",
				2: "Take charge and organize",
			},
			want: AnalyticalLearner,
		},
		{
			name: "repeated intuitive label wins on count",
			answers: Answers{
				0: "Listening and discussing",
				1: "Trust your intuition",
				2: "Trust your intuition",
			},
			want: IntuitiveLearner,
		},
		{
			name: "analytical beats visual in a tie",
			answers: Answers{
				0: "Visual diagrams and charts",
				1: "Analyze details methodically",
				2: "Observe and analyze",
			},
			want: AnalyticalLearner,
		},
		{
			name: "intuitive beats visual in a tie",
			answers: Answers{
				0: "Visual diagrams and charts",
				1: "Trust your intuition",
				2: "Support and encourage others",
			},
			want: IntuitiveLearner,
		},
		{
			name: "visual only",
			answers: Answers{
				0: "Visual diagrams and charts",
				1: "Look for patterns",
				2: "Observe and analyze",
			},
			want: VisualLearner,
		},
		{
			name: "practical fallback",
			answers: Answers{
				0: "Hands-on practice",
				1: "Try different approaches",
				2: "Support and encourage others",
			},
			want: PracticalLearner,
		},
		{
			name:    "empty answers fall back to practical",
			answers: Answers{},
			want:    PracticalLearner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := set.Score(tt.answers); got != tt.want {
				t.Errorf("Score() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScoreUsesCountBeforePrecedence(t *testing.T) {
	set, err := NewQuestionSet([]Question{
		{Prompt: "a", Options: []Option{{Label: "A", Category: CategoryAnalytical}, {Label: "V", Category: CategoryVisual}}},
		{Prompt: "b", Options: []Option{{Label: "A", Category: CategoryAnalytical}, {Label: "V", Category: CategoryVisual}}},
		{Prompt: "c", Options: []Option{{Label: "A", Category: CategoryAnalytical}, {Label: "V", Category: CategoryVisual}}},
	})
	if err != nil {
		t.Fatalf("new set: %v", err)
	}

	got := set.Score(Answers{0: "V", 1: "V", 2: "A"})
	if got != VisualLearner {
		t.Errorf("Score() = %q, want %q", got, VisualLearner)
	}
}

// Every complete answer set over the default questions scores to one of the
// four personalities, and the precedence law holds for every tie set.
func TestScoreExhaustiveDefaultSet(t *testing.T) {
	set := defaultSet(t)
	qs := set.Questions()

	valid := make(map[Personality]bool)
	for _, p := range Personalities() {
		valid[p] = true
	}

	for _, a := range qs[0].Labels() {
		for _, b := range qs[1].Labels() {
			for _, c := range qs[2].Labels() {
				answers := Answers{0: a, 1: b, 2: c}
				got := set.Score(answers)
				if !valid[got] {
					t.Fatalf("Score(%v) = %q, not a known personality", answers, got)
				}

				var hasAnalytical, hasVisual bool
				for _, l := range DominantLabels(answers) {
					switch set.CategoryOf(l) {
					case CategoryAnalytical:
						hasAnalytical = true
					case CategoryVisual:
						hasVisual = true
					}
				}
				if hasAnalytical && hasVisual && got != AnalyticalLearner {
					t.Errorf("Score(%v) = %q, want %q", answers, got, AnalyticalLearner)
				}
			}
		}
	}
}

func TestDominantLabels(t *testing.T) {
	got := DominantLabels(Answers{0: "b", 1: "a", 2: "b", 3: "a", 4: "c"})
	want := []string{"a", "b"}
	if len(got) != len(want) {
		t.Fatalf("DominantLabels = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DominantLabels[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := DominantLabels(Answers{}); len(got) != 0 {
		t.Errorf("DominantLabels(empty) = %v, want empty", got)
	}
}
