package heuristics

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

type Language struct {
	Name       string
	Extensions []string
}

type Weight struct {
	Markers []string
	Points  int
}

// Rules is the complete, data-only scoring model. Markers and keywords are
// lowercase unless stated otherwise.
type Rules struct {
	VCSDir   string
	MaxScore int

	// files are read up to this size, the rest is ignored
	MaxFileSize int64

	ReadmePrefix        string // compared against the upper-cased file name
	ReadmeCharsPerPoint int

	Languages     []Language
	ListingLimit  int
	ListingIndent string

	DependencyFiles []string
	AIKeywords      []string

	PromptNameMarker      string
	PromptExtensions      []string // case-sensitive suffixes
	PromptTriggers        []string
	PromptTemplateMarkers []string // matched literally
	PromptWeights         []Weight
	PromptLengthThreshold int
	PromptLengthPoints    int
}

var DefaultRules = Rules{
	VCSDir:   ".git",
	MaxScore: 5,

	MaxFileSize: 1 << 20,

	ReadmePrefix:        "README",
	ReadmeCharsPerPoint: 500,

	Languages: []Language{
		{Name: "Python", Extensions: []string{".py"}},
		{Name: "JavaScript/TypeScript", Extensions: []string{".js", ".ts", ".jsx", ".tsx"}},
		{Name: "Java", Extensions: []string{".java"}},
		{Name: "Go", Extensions: []string{".go"}},
		{Name: "Rust", Extensions: []string{".rs"}},
	},
	ListingLimit:  20,
	ListingIndent: "    ",

	DependencyFiles: []string{"requirements.txt", "package.json"},
	AIKeywords: []string{
		"openai", "langchain", "anthropic", "huggingface", "pytorch", "tensorflow",
		"transformers", "llama", "deepseek", "gemini", "vertexai", "pinecone", "chromadb",
	},

	PromptNameMarker:      "prompt",
	PromptExtensions:      []string{".txt", ".md"},
	PromptTriggers:        []string{"system message", "you are a"},
	PromptTemplateMarkers: []string{"{{user}}"},
	PromptWeights: []Weight{
		{Markers: []string{"example", "few-shot"}, Points: 2},
		{Markers: []string{"do not", "constraint"}, Points: 1},
	},
	PromptLengthThreshold: 100,
	PromptLengthPoints:    1,
}

func (r Rules) capScore(score int) int {
	if score > r.MaxScore {
		return r.MaxScore
	}
	return score
}

func (r Rules) isReadme(name string) bool {
	return strings.HasPrefix(strings.ToUpper(name), r.ReadmePrefix)
}

func (r Rules) readmeScore(chars int) int {
	return r.capScore(chars / r.ReadmeCharsPerPoint)
}

func (r Rules) languageOf(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}

	for _, lang := range r.Languages {
		for _, e := range lang.Extensions {
			if e == ext {
				return lang.Name
			}
		}
	}

	return ""
}

func (r Rules) isDependencyFile(name string) bool {
	for _, f := range r.DependencyFiles {
		if name == f {
			return true
		}
	}
	return false
}

func (r Rules) isPromptCandidate(name string) bool {
	if strings.Contains(strings.ToLower(name), r.PromptNameMarker) {
		return true
	}

	for _, ext := range r.PromptExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// ratePrompt returns the points of one file and whether it looks like a prompt at all.
func (r Rules) ratePrompt(text string) (int, bool) {
	lower := strings.ToLower(text)
	if !containsAny(lower, r.PromptTriggers) && !containsAny(text, r.PromptTemplateMarkers) {
		return 0, false
	}

	points := 0
	for _, w := range r.PromptWeights {
		if containsAny(lower, w.Markers) {
			points += w.Points
		}
	}
	if utf8.RuneCountInString(text) > r.PromptLengthThreshold {
		points += r.PromptLengthPoints
	}

	return points, true
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
