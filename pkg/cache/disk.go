// Copyright 2026 PR Review Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const diskEntrySuffix = ".cache.json"

// diskEntry is the on-disk envelope. Value is base64 in the JSON encoding,
// which keeps arbitrary diff bytes safe to store.
type diskEntry struct {
	Key       string    `json:"key"`
	Value     []byte    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DiskCache persists entries as one file per key under a directory,
// surviving across process runs. File names are derived from the key by
// hashing, so keys never need to be filesystem-safe.
type DiskCache struct {
	dir string
}

// NewDiskCache creates the cache directory if needed and returns a cache
// rooted there.
func NewDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root directory.
func (d *DiskCache) Dir() string { return d.dir }

func (d *DiskCache) entryPath(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(d.dir, hex.EncodeToString(sum[:])+diskEntrySuffix)
}

// Get returns the stored value for key. Expired and unreadable entries are
// removed and reported as misses, so a damaged cache heals itself.
func (d *DiskCache) Get(ctx context.Context, key string) ([]byte, error) {
	path := d.entryPath(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}

	var entry diskEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		os.Remove(path)
		return nil, ErrCacheMiss
	}
	if time.Now().After(entry.ExpiresAt) {
		os.Remove(path)
		return nil, ErrCacheMiss
	}
	return entry.Value, nil
}

// Set writes the entry atomically: a rename replaces any existing file so
// concurrent readers never observe a partial write.
func (d *DiskCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	entry := diskEntry{
		Key:       key,
		Value:     value,
		ExpiresAt: time.Now().Add(ttl),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	path := d.entryPath(key)
	tmp, err := os.CreateTemp(d.dir, "tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Delete removes the entry for key if present.
func (d *DiskCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(d.entryPath(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Clear removes every cache entry file. Other files in the directory are
// left alone.
func (d *DiskCache) Clear(ctx context.Context) error {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return fmt.Errorf("failed to list cache directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), diskEntrySuffix) {
			continue
		}
		if err := os.Remove(filepath.Join(d.dir, e.Name())); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove cache entry %s: %w", e.Name(), err)
		}
	}
	return nil
}
