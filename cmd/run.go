package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/persona/internal/app"
	"github.com/abhisek/persona/internal/quiz"
	"github.com/abhisek/persona/internal/screens/landing"
	"github.com/abhisek/persona/internal/screens/results"
)

// runApp wires the collaborators and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := setup(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	ld := landing.Deps{
		Session:       d.auth,
		Auth:          d.auth,
		Questions:     d.questions,
		Submitter:     quiz.NewSubmitter(d.backend.ResultRepo(), d.logger.Named("quiz")),
		SubmitTimeout: d.cfg.SubmitTimeout,
		Results:       d.backend.ResultRepo(),
		Logger:        d.logger.Named("landing"),
	}
	// Leave Explainer as a nil interface, not a nil *insight.Service.
	if d.insight != nil {
		ld.Explainer = results.Explainer(d.insight)
	}

	return app.Run(app.Options{Landing: ld, Logger: d.logger})
}
