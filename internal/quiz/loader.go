package quiz

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed default_questions.yaml
var defaultQuestionsYAML []byte

// questionFile is the on-disk YAML shape of a question set.
type questionFile struct {
	Questions []questionEntry `yaml:"questions"`
}

type questionEntry struct {
	Prompt  string        `yaml:"prompt"`
	Options []optionEntry `yaml:"options"`
}

type optionEntry struct {
	Label    string `yaml:"label"`
	Category string `yaml:"category"`
}

// DefaultQuestionSet returns the built-in three-question set.
func DefaultQuestionSet() (*QuestionSet, error) {
	set, err := ParseQuestionSet(defaultQuestionsYAML)
	if err != nil {
		return nil, fmt.Errorf("parse default question set: %w", err)
	}
	return set, nil
}

// LoadQuestionSet reads a question set from a YAML file. An empty path
// returns the built-in set.
func LoadQuestionSet(path string) (*QuestionSet, error) {
	if path == "" {
		return DefaultQuestionSet()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question set: %w", err)
	}
	set, err := ParseQuestionSet(data)
	if err != nil {
		return nil, fmt.Errorf("parse question set %s: %w", path, err)
	}
	return set, nil
}

// ParseQuestionSet decodes YAML into a QuestionSet. Prompts and labels are
// trimmed and NFC-normalized so that labels typed in different editors still
// compare equal during scoring.
func ParseQuestionSet(data []byte) (*QuestionSet, error) {
	var f questionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	qs := make([]Question, 0, len(f.Questions))
	for i, e := range f.Questions {
		q := Question{Prompt: normalize(e.Prompt)}
		for _, o := range e.Options {
			cat, err := ParseCategory(strings.ToLower(strings.TrimSpace(o.Category)))
			if err != nil {
				return nil, fmt.Errorf("question %d: %w", i, err)
			}
			q.Options = append(q.Options, Option{Label: normalize(o.Label), Category: cat})
		}
		qs = append(qs, q)
	}

	return NewQuestionSet(qs)
}

func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
