// Copyright 2026 PR Review Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package cache stores fetched diffs so repeated runs against the same
// pull request do not refetch unchanged content.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss reports an absent or expired entry. Callers branch on it
// with errors.Is; it is not a failure.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key, or ErrCacheMiss when absent or
	// expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry.
	Clear(ctx context.Context) error
}
