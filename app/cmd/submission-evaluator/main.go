package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/golangci/submission-evaluator/app/analytics"
	"github.com/golangci/submission-evaluator/app/lib/config"
	"github.com/golangci/submission-evaluator/app/utils/runmode"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "submission-evaluator",
	Short: "Evaluate repositories submitted by email and reply with a report",
	Long: `submission-evaluator reads unread "Project Submission" messages from a mailbox,
clones the referenced repository, rates it and replies to the submitter.

Settings come from an optional YAML file and EVAL_* environment variables,
e.g. EVAL_EMAIL_HOST, EVAL_SMTP_HOST, EVAL_EMAIL_USER and EVAL_EMAIL_PASS.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level, overrides log_level setting")
	rootCmd.AddCommand(runCmd, watchCmd, evaluateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.Error(err)
		stop()
		os.Exit(1) //nolint:gocritic
	}
}

// loadConfig reads settings and sets up logging and tracking from them.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "bad log level %q", cfg.LogLevel)
	}
	logrus.SetLevel(level)
	if runmode.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	if runmode.IsDebug() {
		logrus.SetLevel(logrus.DebugLevel)
	}

	analytics.Setup(analytics.Settings{
		MixpanelToken:   cfg.MixpanelToken,
		AmplitudeAPIKey: cfg.AmplitudeAPIKey,
	})

	return cfg, nil
}
