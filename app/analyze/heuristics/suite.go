package heuristics

import (
	"context"

	"github.com/golangci/submission-evaluator/app/analytics"
	"github.com/golangci/submission-evaluator/app/analyze/heuristics/result"
)

type Runner interface {
	Run(ctx context.Context, dir string) (*result.Result, error)
}

// Suite runs the four repository heuristics. None of them modify dir.
type Suite struct {
	Rules Rules
}

var _ Runner = Suite{}

func NewSuite(rules Rules) *Suite {
	return &Suite{
		Rules: rules,
	}
}

func (s Suite) Run(ctx context.Context, dir string) (*result.Result, error) {
	readme, err := s.Readme(dir)
	if err != nil {
		return nil, err
	}

	arch, err := s.Architecture(dir)
	if err != nil {
		return nil, err
	}

	libs, err := s.AILibraries(dir)
	if err != nil {
		return nil, err
	}

	prompts := s.Prompts(ctx, dir)

	analytics.Log(ctx).Infof("Heuristics: readme %d/%d, %d files, languages %v, ai libraries %v, prompts %d/%d",
		readme.Score, s.Rules.MaxScore, arch.FileCount, arch.Languages, libs.Detected, prompts.Score, s.Rules.MaxScore)

	return &result.Result{
		Readme:       *readme,
		Architecture: *arch,
		AILibraries:  *libs,
		Prompts:      *prompts,
	}, nil
}
