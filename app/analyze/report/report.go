package report

import (
	"fmt"
	"strings"

	"github.com/golangci/submission-evaluator/app/analyze/heuristics/result"
)

type Recommendation string

const (
	RecommendationApproved         Recommendation = "APPROVED"
	RecommendationNeedsImprovement Recommendation = "NEEDS IMPROVEMENT"
)

// ReadmeApprovalThreshold is the lowest readme score that can be approved.
const ReadmeApprovalThreshold = 3

const (
	noteReadme = "Improve documentation/README."
	noteNoAI   = "No AI dependencies found. Ensure AI integration is documented."
)

type Report struct {
	Reference      string
	Result         result.Result
	Recommendation Recommendation
	Notes          []string
}

func Compose(ref string, res *result.Result) *Report {
	r := &Report{
		Reference:      ref,
		Result:         *res,
		Recommendation: RecommendationNeedsImprovement,
	}

	readmeOK := res.Readme.Score >= ReadmeApprovalThreshold
	hasAI := len(res.AILibraries.Detected) != 0
	if readmeOK && hasAI {
		r.Recommendation = RecommendationApproved
	}

	if !readmeOK {
		r.Notes = append(r.Notes, noteReadme)
	}
	if !hasAI {
		r.Notes = append(r.Notes, noteNoAI)
	}

	return r
}

// Render returns the text sent to the submitter and stored as the artifact.
// Recipients read it as is, so the layout must stay stable.
func (r Report) Render() string {
	res := r.Result
	libs := res.AILibraries.Detected

	lines := []string{
		fmt.Sprintf("# Project Evaluation Report for %s", r.Reference),
		"",
		"## Summary",
		fmt.Sprintf("- **Files**: %d", res.Architecture.FileCount),
		fmt.Sprintf("- **Languages**: %s", joinOr(res.Architecture.Languages, "Unknown")),
		fmt.Sprintf("- **AI Libraries**: %s", joinOr(libs, "None Detected")),
		"",
		"## Ratings",
		fmt.Sprintf("- **Readme Quality**: %d/5 (%s)", res.Readme.Score, res.Readme.Status),
		fmt.Sprintf("- **Prompt Engineering**: %d/5", res.Prompts.Score),
		"",
		"## Architecture Overview",
		"```",
		strings.Join(res.Architecture.Listing, "\n"),
	}

	if res.Architecture.Truncated {
		lines = append(lines, "...")
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, "```", "", "## AI Integration Check")

	if len(libs) != 0 {
		lines = append(lines, "Project uses the following AI components:")
		for _, lib := range libs {
			lines = append(lines, "- "+lib)
		}
	} else {
		lines = append(lines, "No specific AI libraries found in dependency files.")
	}

	lines = append(lines, "", "## Recommendation", fmt.Sprintf("**%s**", r.Recommendation))
	for _, n := range r.Notes {
		lines = append(lines, "- "+n)
	}

	return strings.Join(lines, "\n")
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}

// FailureMessage is the plain-text body sent when a repository can't be evaluated.
func FailureMessage(ref, reason string) string {
	return fmt.Sprintf("Failed to evaluate repository %s. Error: %s", ref, reason)
}
