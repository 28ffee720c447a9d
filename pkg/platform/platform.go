// Copyright 2026 PR Review Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package platform fetches pull request diffs from hosting platforms.
package platform

import (
	"context"
	"fmt"
)

// Platform is a hosting platform that can serve raw unified diffs.
type Platform interface {
	// Name identifies the platform, e.g. "github".
	Name() string

	// FetchDiff retrieves the raw unified diff for a pull request.
	FetchDiff(ctx context.Context, pr PullRequest) (string, error)
}

// PullRequest identifies one pull request on a hosting platform.
type PullRequest struct {
	Owner  string
	Repo   string
	Number int

	// URL is the canonical browser URL of the pull request.
	URL string
}

// String returns the short owner/repo#number form used in logs.
func (pr PullRequest) String() string {
	if pr.Owner == "" || pr.Repo == "" {
		return pr.URL
	}
	return fmt.Sprintf("%s/%s#%d", pr.Owner, pr.Repo, pr.Number)
}
