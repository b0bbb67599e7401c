package main

import (
	"fmt"
	"os"

	"github.com/golangci/submission-evaluator/app/analyze/processors"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const cloneFailedText = "Error: Failed to clone repository. Please check the URL."

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <repo-url> [output]",
	Short: "Evaluate one repository and write the report without any mail",
	Long: `Evaluate one repository and write the report to output, or to stdout
when output is omitted. No mail settings are needed.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err = cfg.ValidateAnalysis(); err != nil {
			return err
		}

		e, err := processors.BuildEvaluator(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		repoURL := args[0]
		logrus.Infof("Evaluating %s...", repoURL)

		var text string
		rep, evalErr := e.Evaluate(cmd.Context(), repoURL)
		if evalErr != nil {
			var eerr *processors.EvaluationError
			if !errors.As(evalErr, &eerr) || eerr.Stage != processors.StageSnapshot {
				return evalErr
			}
			text = cloneFailedText
		} else {
			text = rep.Render()
		}

		if len(args) < 2 {
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return evalErr
		}

		if err = os.WriteFile(args[1], []byte(text), 0644); err != nil {
			return errors.Wrapf(err, "can't write report to %s", args[1])
		}
		if evalErr == nil {
			logrus.Infof("Report generated at %s", args[1])
		}

		return evalErr
	},
}
