package result

type ReadmeStatus string

const (
	ReadmePresent ReadmeStatus = "Present"
	ReadmeMissing ReadmeStatus = "Missing"
)

type Readme struct {
	Status ReadmeStatus `json:"status"`
	Score  int          `json:"score"`
}

type Architecture struct {
	Languages []string `json:"languages"`
	FileCount int      `json:"fileCount"`
	// Listing holds at most the configured number of depth-indented entries.
	Listing   []string `json:"listing"`
	Truncated bool     `json:"truncated"`
}

type AILibraries struct {
	Detected []string `json:"detected"`
}

type Prompts struct {
	Score int      `json:"score"`
	Files []string `json:"files"`
}

type Result struct {
	Readme       Readme       `json:"readme"`
	Architecture Architecture `json:"architecture"`
	AILibraries  AILibraries  `json:"aiLibraries"`
	Prompts      Prompts      `json:"prompts"`
}
