package extract

import "regexp"

// RepositoryPattern matches a hosted repository reference: scheme, host, owner and name.
const RepositoryPattern = `https?://github\.com/[a-zA-Z0-9_-]+/[a-zA-Z0-9_-]+`

var repositoryRe = regexp.MustCompile(RepositoryPattern)

// FindReference returns the first repository URL in text or "" if there is none.
// Other references in the same text are ignored.
func FindReference(text string) string {
	return repositoryRe.FindString(text)
}
