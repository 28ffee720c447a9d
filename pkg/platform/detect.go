// Package platform provides CI environment detection for GitHub Actions.
package platform

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pr-review-toolkit/diffpress/pkg/errors"
)

// prRefPattern matches GitHub Actions pull request refs such as
// "refs/pull/123/merge" and "refs/pull/123/head".
var prRefPattern = regexp.MustCompile(`^refs/pull/(\d+)/`)

// IsGitHubActions reports whether the process runs inside a GitHub Actions
// job.
func IsGitHubActions() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

// PRFromEnvironment derives the current pull request from the standard
// GitHub Actions environment: GITHUB_REPOSITORY holds "owner/repo" and
// GITHUB_REF holds "refs/pull/<number>/merge" for pull_request events.
func PRFromEnvironment() (PullRequest, error) {
	repo := os.Getenv("GITHUB_REPOSITORY")
	if repo == "" {
		return PullRequest{}, errors.ValidationError(
			"GITHUB_REPOSITORY is not set; not running in GitHub Actions?", nil)
	}
	parts := strings.SplitN(repo, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return PullRequest{}, errors.ValidationError(
			fmt.Sprintf("GITHUB_REPOSITORY is not owner/repo: %q", repo), nil)
	}

	ref := os.Getenv("GITHUB_REF")
	m := prRefPattern.FindStringSubmatch(ref)
	if m == nil {
		return PullRequest{}, errors.ValidationError(
			fmt.Sprintf("GITHUB_REF is not a pull request ref: %q", ref), nil)
	}
	number, err := strconv.Atoi(m[1])
	if err != nil || number <= 0 {
		return PullRequest{}, errors.ValidationError(
			fmt.Sprintf("GITHUB_REF has no valid pull request number: %q", ref), nil)
	}

	return PullRequest{
		Owner:  parts[0],
		Repo:   parts[1],
		Number: number,
		URL:    fmt.Sprintf("https://%s/%s/%s/pull/%d", githubHost, parts[0], parts[1], number),
	}, nil
}
