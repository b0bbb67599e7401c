package main

import (
	"context"

	"github.com/golangci/submission-evaluator/app/analyze"
	"github.com/golangci/submission-evaluator/app/analyze/processors"
	"github.com/golangci/submission-evaluator/app/lib/config"
	"github.com/golangci/submission-evaluator/app/lib/mailbox"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process all pending submissions once",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err = cfg.Validate(); err != nil {
			return err
		}

		o, err := buildOrchestrator(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		return runCycle(cmd.Context(), o)
	},
}

func buildOrchestrator(ctx context.Context, cfg *config.Config) (*analyze.Orchestrator, error) {
	p, err := processors.NewMailFactory().BuildProcessor(ctx, cfg)
	if err != nil {
		return nil, err
	}

	d := mailbox.NewIMAPDialer(mailbox.Settings{
		Host:     cfg.EmailHost,
		User:     cfg.EmailUser,
		Password: cfg.EmailPass,
		Folder:   cfg.Mailbox,
	})

	return analyze.NewOrchestrator(d, p, cfg.SubjectMarker), nil
}

func runCycle(ctx context.Context, o *analyze.Orchestrator) error {
	outcomes, err := o.RunCycle(ctx)
	if err != nil {
		return err
	}

	counts := map[processors.Status]int{}
	for _, out := range outcomes {
		counts[out.Status]++
	}
	logrus.Infof("Cycle done: %d submissions, %v", len(outcomes), counts)
	return nil
}
