package githubsearch

import (
	"regexp"
	"strconv"
	"strings"

	"portfolio-contributions/internal/entities"
)

var closingRefPattern = regexp.MustCompile(`(?i)\b(?:close[sd]?|fix(?:e[sd])?|resolve[sd]?)\s+#(\d+)`)

// ExtractClosedIssues finds closing keywords followed by an issue number in body.
// Every mention yields an entry, in order of appearance. Issue URLs are built
// from the repository part of prURL. The keyword must start a word, so
// "prefixes #3" is not a reference. Numbers that overflow an int are not
// issue numbers GitHub can assign and are dropped.
func ExtractClosedIssues(body *string, prURL string) []entities.IssueRef {
	refs := make([]entities.IssueRef, 0)
	if body == nil || *body == "" {
		return refs
	}

	base := issueBaseURL(prURL)
	for _, m := range closingRefPattern.FindAllStringSubmatch(*body, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		refs = append(refs, entities.IssueRef{
			Number: n,
			URL:    base + "/issues/" + m[1],
		})
	}
	return refs
}

func issueBaseURL(prURL string) string {
	if i := strings.Index(prURL, "/pull/"); i >= 0 {
		return prURL[:i]
	}
	return strings.TrimRight(prURL, "/")
}
