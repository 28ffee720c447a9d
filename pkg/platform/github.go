// Copyright 2026 PR Review Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package platform

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pr-review-toolkit/diffpress/pkg/errors"
	"github.com/pr-review-toolkit/diffpress/pkg/observability"
)

const (
	githubHost = "github.com"
	userAgent  = "diffpress/1.0"

	// maxResponseBytes caps what we will read from the network regardless
	// of configuration, so a hostile or broken endpoint cannot exhaust
	// memory. Configured diff-size limits are enforced by the caller.
	maxResponseBytes = 50 << 20
)

// GitHubClient fetches pull request diffs over GitHub's ".diff" endpoint.
// Configure it fully before the first FetchDiff call; afterwards it is safe
// for concurrent use.
type GitHubClient struct {
	token   string
	baseURL string
	client  *http.Client
	log     observability.Logger
	metrics *observability.Metrics
}

// NewGitHubClient builds a client. An empty token sends unauthenticated
// requests, which work for public repositories only.
func NewGitHubClient(token string) *GitHubClient {
	return &GitHubClient{
		token: token,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: observability.NewNopLogger(),
	}
}

// SetBaseURL points the client at a GitHub Enterprise host instead of
// github.com. The URL is validated against private-network targets.
func (g *GitHubClient) SetBaseURL(baseURL string) error {
	if err := validateBaseURL(baseURL); err != nil {
		return errors.ValidationError("invalid base URL", err)
	}
	g.baseURL = strings.TrimSuffix(baseURL, "/")
	return nil
}

// SetTimeout overrides the default 30s request timeout.
func (g *GitHubClient) SetTimeout(d time.Duration) {
	if d > 0 {
		g.client.Timeout = d
	}
}

// SetLogger replaces the no-op default.
func (g *GitHubClient) SetLogger(log observability.Logger) {
	if log != nil {
		g.log = log
	}
}

// SetMetrics attaches a metrics sink.
func (g *GitHubClient) SetMetrics(m *observability.Metrics) {
	g.metrics = m
}

// Name returns the platform name.
func (g *GitHubClient) Name() string {
	return "github"
}

// ParsePRURL validates a GitHub pull request URL and breaks it into its
// parts. Only https URLs on github.com of the form
// https://github.com/<owner>/<repo>/pull/<number> are accepted.
func ParsePRURL(raw string) (PullRequest, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return PullRequest{}, errors.ValidationError(fmt.Sprintf("invalid PR URL %q", raw), err)
	}
	if u.Scheme != "https" {
		return PullRequest{}, errors.ValidationError(
			fmt.Sprintf("PR URL must use https, got %q", raw), nil)
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	if host != githubHost {
		return PullRequest{}, errors.ValidationError(
			fmt.Sprintf("PR URL must point at %s, got %q", githubHost, raw), nil)
	}

	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) < 4 || segs[0] == "" || segs[1] == "" || segs[2] != "pull" {
		return PullRequest{}, errors.ValidationError(
			fmt.Sprintf("PR URL must look like https://github.com/owner/repo/pull/123, got %q", raw), nil)
	}
	number, err := strconv.Atoi(segs[3])
	if err != nil || number <= 0 {
		return PullRequest{}, errors.ValidationError(
			fmt.Sprintf("PR URL has no valid pull request number: %q", raw), nil)
	}

	return PullRequest{
		Owner:  segs[0],
		Repo:   segs[1],
		Number: number,
		URL:    fmt.Sprintf("https://%s/%s/%s/pull/%d", githubHost, segs[0], segs[1], number),
	}, nil
}

// FetchDiff downloads the raw unified diff for pr by requesting the pull
// request URL with a ".diff" suffix.
func (g *GitHubClient) FetchDiff(ctx context.Context, pr PullRequest) (string, error) {
	diffURL := g.diffURL(pr)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, diffURL, nil)
	if err != nil {
		return "", errors.PlatformError("failed to create request", err)
	}
	if g.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("token %s", g.token))
	}
	req.Header.Set("User-Agent", userAgent)

	g.log.Debug("fetching diff",
		observability.String("pr", pr.String()),
		observability.String("url", diffURL))

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		g.metrics.RecordFetch(g.Name(), time.Since(start), false)
		if ctx.Err() != nil {
			return "", errors.TimeoutError(
				fmt.Sprintf("fetching diff for %s", pr.String()), err)
		}
		return "", errors.PlatformError(
			fmt.Sprintf("failed to fetch diff for %s", pr.String()), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.metrics.RecordFetch(g.Name(), time.Since(start), false)
		return "", errors.PlatformError(
			fmt.Sprintf("failed to fetch diff for %s: status %d", pr.String(), resp.StatusCode), nil).
			WithContext("url", diffURL).
			WithContext("status", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		g.metrics.RecordFetch(g.Name(), time.Since(start), false)
		return "", errors.PlatformError(
			fmt.Sprintf("failed to read diff for %s", pr.String()), err)
	}
	if len(body) > maxResponseBytes {
		g.metrics.RecordFetch(g.Name(), time.Since(start), false)
		return "", errors.DiffTooLargeError(
			fmt.Sprintf("diff for %s exceeds %d bytes", pr.String(), maxResponseBytes), nil)
	}

	g.metrics.RecordFetch(g.Name(), time.Since(start), true)
	g.log.Debug("diff fetched",
		observability.String("pr", pr.String()),
		observability.Int("bytes", len(body)))
	return string(body), nil
}

func (g *GitHubClient) diffURL(pr PullRequest) string {
	if g.baseURL != "" {
		return fmt.Sprintf("%s/%s/%s/pull/%d.diff", g.baseURL, pr.Owner, pr.Repo, pr.Number)
	}
	return pr.URL + ".diff"
}
