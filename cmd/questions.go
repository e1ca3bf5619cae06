package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/persona/internal/quiz"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Print the loaded question set",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		set, err := quiz.LoadQuestionSet(cfg.QuestionsFile)
		if err != nil {
			return err
		}
		writeQuestions(cmd.OutOrStdout(), set)
		return nil
	},
}

// writeQuestions lists every question with its options and their scoring
// category. Uncategorized options are marked as such.
func writeQuestions(w io.Writer, set *quiz.QuestionSet) {
	fmt.Fprintf(w, "%d questions\n", set.Len())
	for _, q := range set.Questions() {
		fmt.Fprintf(w, "\n%d. %s\n", q.Index+1, q.Prompt)
		for _, o := range q.Options {
			cat := string(o.Category)
			if o.Category == quiz.CategoryNone {
				cat = "uncategorized"
			}
			fmt.Fprintf(w, "   - %s (%s)\n", o.Label, cat)
		}
	}
}
