package processors

import (
	"context"

	"github.com/golangci/submission-evaluator/app/analytics"
	"github.com/golangci/submission-evaluator/app/analyze/artifacts"
	"github.com/golangci/submission-evaluator/app/analyze/heuristics"
	"github.com/golangci/submission-evaluator/app/analyze/reporters"
	"github.com/golangci/submission-evaluator/app/analyze/repoinfo"
	"github.com/golangci/submission-evaluator/app/analyze/state"
	"github.com/golangci/submission-evaluator/app/lib/config"
	"github.com/golangci/submission-evaluator/app/lib/fetchers"
	"github.com/golangci/submission-evaluator/app/lib/mailer"
	"github.com/golangci/submission-evaluator/app/utils/github"
	"github.com/pkg/errors"
)

type Factory interface {
	BuildProcessor(ctx context.Context, cfg *config.Config) (Processor, error)
}

type mailFactory struct{}

func NewMailFactory() Factory {
	return mailFactory{}
}

func (f mailFactory) BuildProcessor(ctx context.Context, cfg *config.Config) (Processor, error) {
	e, err := BuildEvaluator(ctx, cfg)
	if err != nil {
		return nil, err
	}

	e.Reporter = reporters.NewMailReporter(cfg.EmailUser, NewSender(cfg))

	if cfg.StateAPIURL != "" {
		e.State = state.NewAPIStorage(cfg.StateAPIURL, nil)
	}
	if cfg.GithubToken != "" {
		e.RepoInfo = repoinfo.NewGithubFetcher(github.NewMyClient(cfg.GithubToken))
	}

	return e, nil
}

// BuildEvaluator builds an evaluator that doesn't need the mail settings.
func BuildEvaluator(ctx context.Context, cfg *config.Config) (*Evaluator, error) {
	fetcher, err := fetchers.New(cfg.CloneBackend)
	if err != nil {
		return nil, err
	}

	var mirror artifacts.Mirror
	if cfg.MinioEndpoint != "" {
		m, err := artifacts.NewMinioMirror(ctx, artifacts.MinioSettings{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			return nil, errors.Wrap(err, "can't set up report mirror")
		}
		mirror = m
		analytics.Log(ctx).Infof("Reports are mirrored to %s/%s", cfg.MinioEndpoint, cfg.MinioBucket)
	}

	return NewEvaluator(cfg.WorkspaceDir, Deps{
		Fetcher: fetcher,
		Runner:  heuristics.NewSuite(heuristics.DefaultRules),
		Store:   artifacts.NewStore(cfg.ReportsDir, mirror),
	}), nil
}

func NewSender(cfg *config.Config) mailer.Sender {
	if cfg.MailTransport == mailer.TransportSendGrid {
		return mailer.NewSendGrid(cfg.SendGridAPIKey)
	}

	return mailer.NewSMTP(mailer.SMTPSettings{
		Host:     cfg.SMTPHost,
		User:     cfg.EmailUser,
		Password: cfg.EmailPass,
	})
}
