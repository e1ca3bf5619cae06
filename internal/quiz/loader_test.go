package quiz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultQuestionSet(t *testing.T) {
	set, err := DefaultQuestionSet()
	require.NoError(t, err)
	require.Equal(t, 3, set.Len())

	for i, q := range set.Questions() {
		assert.Equal(t, i, q.Index)
		assert.Len(t, q.Options, 4)
	}

	assert.Equal(t, CategoryAnalytical, set.CategoryOf("Reading and writing"))
	assert.Equal(t, CategoryIntuitive, set.CategoryOf("Trust your intuition"))
	assert.Equal(t, CategoryVisual, set.CategoryOf("Look for patterns"))
	assert.Equal(t, CategoryNone, set.CategoryOf("Take charge and organize"))
	assert.Equal(t, CategoryNone, set.CategoryOf("not an option"))
}

func TestParseQuestionSetNormalizesLabels(t *testing.T) {
	// "Cafe" followed by a combining acute accent (NFD).
	data := []byte(`
questions:
  - prompt: "  Pick one  "
    options:
      - label: "Cafe\u0301"
        category: Visual
      - label: Tea
`)
	set, err := ParseQuestionSet(data)
	require.NoError(t, err)

	q, ok := set.Question(0)
	require.True(t, ok)
	assert.Equal(t, "Pick one", q.Prompt)
	assert.Equal(t, "Caf\u00e9", q.Options[0].Label)
	assert.Equal(t, CategoryVisual, set.CategoryOf("Caf\u00e9"))
}

func TestParseQuestionSetErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", "questions: []"},
		{"bad yaml", "questions: [::"},
		{"unknown category", `
questions:
  - prompt: p
    options:
      - {label: a, category: sporty}
      - {label: b}
`},
		{"too few options", `
questions:
  - prompt: p
    options:
      - {label: a}
`},
		{"duplicate option", `
questions:
  - prompt: p
    options:
      - {label: a}
      - {label: a}
`},
		{"conflicting categories", `
questions:
  - prompt: p
    options:
      - {label: a, category: visual}
      - {label: b}
  - prompt: q
    options:
      - {label: a, category: analytical}
      - {label: c}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuestionSet([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadQuestionSetFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
questions:
  - prompt: Morning or night?
    options:
      - {label: Morning, category: practical}
      - {label: Night, category: intuitive}
`), 0o644))

	set, err := LoadQuestionSet(path)
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())
	assert.Equal(t, IntuitiveLearner, set.Score(Answers{0: "Night"}))

	_, err = LoadQuestionSet(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	def, err := LoadQuestionSet("")
	require.NoError(t, err)
	assert.Equal(t, 3, def.Len())
}

func TestQuestionSetIsImmutable(t *testing.T) {
	set := defaultSet(t)
	qs := set.Questions()
	qs[0].Options[0].Label = "changed"

	q, _ := set.Question(0)
	assert.Equal(t, "Reading and writing", q.Options[0].Label)

	_, ok := set.Question(3)
	assert.False(t, ok)
}
