package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/persona/internal/insight"
	"github.com/abhisek/persona/internal/quiz"
	"github.com/abhisek/persona/internal/store"
)

var errNoInsight = errors.New("no LLM provider configured; set llm.provider or an API key such as GEMINI_API_KEY")

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Print a user's stored quiz results",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		limit, _ := cmd.Flags().GetInt("limit")
		explain, _ := cmd.Flags().GetBool("explain")

		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		user, err := d.auth.LookupUser(ctx, email)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("no account for %s", email)
		}

		recs, err := d.backend.ResultRepo().ListResults(ctx, user.ID, limit)
		if err != nil {
			return fmt.Errorf("list results: %w", err)
		}

		out := cmd.OutOrStdout()
		writeReport(out, d.questions, user.Email, recs)

		if !explain || len(recs) == 0 {
			return nil
		}
		if d.insight == nil {
			return errNoInsight
		}
		ins, err := d.insight.Explain(ctx, recs[0])
		if err != nil {
			return fmt.Errorf("explain result: %w", err)
		}
		fmt.Fprintln(out)
		writeInsight(out, ins)
		return nil
	},
}

func init() {
	resultsCmd.Flags().String("email", "", "Account email")
	resultsCmd.Flags().Int("limit", 10, "Maximum number of results (0 for all)")
	resultsCmd.Flags().Bool("explain", false, "Ask the LLM provider to explain the newest result")
	_ = resultsCmd.MarkFlagRequired("email")
}

const timeLayout = "2006-01-02 15:04 MST"

// writeReport prints recs as plain text, newest first as stored.
func writeReport(w io.Writer, set *quiz.QuestionSet, email string, recs []store.ResultRecord) {
	if len(recs) == 0 {
		fmt.Fprintf(w, "No results for %s.\n", email)
		return
	}

	fmt.Fprintf(w, "Results for %s (%d)\n", email, len(recs))
	for _, rec := range recs {
		fmt.Fprintf(w, "\n%s  %s\n", rec.CreatedAt.UTC().Format(timeLayout), rec.ResultSummary)
		for i := 0; i < set.Len(); i++ {
			q, _ := set.Question(i)
			answer, ok := rec.Answers[i]
			if !ok {
				answer = "(no answer)"
			}
			fmt.Fprintf(w, "  %d. %s\n     %s\n", i+1, q.Prompt, answer)
		}
	}
}

func writeInsight(w io.Writer, ins *insight.Insight) {
	fmt.Fprintln(w, ins.Headline)
	fmt.Fprintf(w, "%s\n", ins.Description)
	for _, tip := range ins.Tips {
		fmt.Fprintf(w, "  * %s\n", tip)
	}
}
