package main

import (
	"net/http"

	"github.com/cenkalti/backoff"
	"github.com/golangci/submission-evaluator/app/analytics"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Process pending submissions every poll_interval until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err = cfg.Validate(); err != nil {
			return err
		}

		ctx := cmd.Context()
		o, err := buildOrchestrator(ctx, cfg)
		if err != nil {
			return err
		}

		if cfg.MetricsAddr != "" {
			mux := http.NewServeMux()
			mux.Handle("/metrics", analytics.MetricsHandler())
			go func() {
				if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil { //nolint:gosec
					logrus.Errorf("Metrics server failed: %s", err)
				}
			}()
			logrus.Infof("Serving metrics on %s/metrics", cfg.MetricsAddr)
		}

		ticker := backoff.NewTicker(backoff.NewConstantBackOff(cfg.PollInterval))
		defer ticker.Stop()

		logrus.Infof("Polling %s every %s", cfg.EmailHost, cfg.PollInterval)
		for {
			select {
			case <-ctx.Done():
				logrus.Info("Stopped")
				return nil
			case <-ticker.C:
				// a broken mailbox connection only fails this cycle
				if err := runCycle(ctx, o); err != nil {
					logrus.Errorf("Cycle failed: %s", err)
				}
			}
		}
	},
}
