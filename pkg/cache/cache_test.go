// Copyright 2026 PR Review Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// caches under test share the Cache interface; the suite runs against both
// implementations.
func testCaches(t *testing.T) map[string]Cache {
	t.Helper()
	disk, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskCache() error = %v", err)
	}
	return map[string]Cache{
		"memory": NewMemoryCache(),
		"disk":   disk,
	}
}

func TestCacheRoundTrip(t *testing.T) {
	for name, c := range testCaches(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			value := []byte("diff --git a/x b/x\n+line\n")

			if err := c.Set(ctx, "k1", value, time.Minute); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			got, err := c.Get(ctx, "k1")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if string(got) != string(value) {
				t.Errorf("Get() = %q, want %q", got, value)
			}
		})
	}
}

func TestCacheMiss(t *testing.T) {
	for name, c := range testCaches(t) {
		t.Run(name, func(t *testing.T) {
			_, err := c.Get(context.Background(), "absent")
			if !errors.Is(err, ErrCacheMiss) {
				t.Errorf("Get() error = %v, want ErrCacheMiss", err)
			}
		})
	}
}

func TestCacheExpiry(t *testing.T) {
	for name, c := range testCaches(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := c.Set(ctx, "short", []byte("v"), 10*time.Millisecond); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			time.Sleep(30 * time.Millisecond)

			_, err := c.Get(ctx, "short")
			if !errors.Is(err, ErrCacheMiss) {
				t.Errorf("Get() after expiry error = %v, want ErrCacheMiss", err)
			}
		})
	}
}

func TestCacheDelete(t *testing.T) {
	for name, c := range testCaches(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			c.Set(ctx, "k", []byte("v"), time.Minute)
			if err := c.Delete(ctx, "k"); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
				t.Errorf("Get() after delete error = %v, want ErrCacheMiss", err)
			}
			if err := c.Delete(ctx, "never-existed"); err != nil {
				t.Errorf("Delete() of absent key error = %v, want nil", err)
			}
		})
	}
}

func TestCacheClear(t *testing.T) {
	for name, c := range testCaches(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			c.Set(ctx, "a", []byte("1"), time.Minute)
			c.Set(ctx, "b", []byte("2"), time.Minute)
			if err := c.Clear(ctx); err != nil {
				t.Fatalf("Clear() error = %v", err)
			}
			for _, key := range []string{"a", "b"} {
				if _, err := c.Get(ctx, key); !errors.Is(err, ErrCacheMiss) {
					t.Errorf("Get(%q) after clear error = %v, want ErrCacheMiss", key, err)
				}
			}
		})
	}
}

func TestCacheOverwrite(t *testing.T) {
	for name, c := range testCaches(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			c.Set(ctx, "k", []byte("old"), time.Minute)
			c.Set(ctx, "k", []byte("new"), time.Minute)
			got, err := c.Get(ctx, "k")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if string(got) != "new" {
				t.Errorf("Get() = %q, want %q", got, "new")
			}
		})
	}
}

func TestMemoryCachePurge(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryCache()
	m.Set(ctx, "live", []byte("v"), time.Minute)
	m.Set(ctx, "dead", []byte("v"), time.Nanosecond)
	time.Sleep(5 * time.Millisecond)

	if removed := m.Purge(); removed != 1 {
		t.Errorf("Purge() = %d, want 1", removed)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestDiskCacheSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewDiskCache(dir)
	if err != nil {
		t.Fatalf("NewDiskCache() error = %v", err)
	}
	if err := first.Set(ctx, "persist", []byte("survives"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	second, err := NewDiskCache(dir)
	if err != nil {
		t.Fatalf("NewDiskCache() reopen error = %v", err)
	}
	got, err := second.Get(ctx, "persist")
	if err != nil {
		t.Fatalf("Get() after reopen error = %v", err)
	}
	if string(got) != "survives" {
		t.Errorf("Get() = %q, want %q", got, "survives")
	}
}

func TestDiskCacheCorruptEntryHeals(t *testing.T) {
	ctx := context.Background()
	d, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskCache() error = %v", err)
	}
	if err := d.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// Corrupt the entry on disk.
	entries, err := os.ReadDir(d.Dir())
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), diskEntrySuffix) {
			if err := os.WriteFile(filepath.Join(d.Dir(), e.Name()), []byte("{broken"), 0o644); err != nil {
				t.Fatal(err)
			}
		}
	}

	if _, err := d.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get() of corrupt entry error = %v, want ErrCacheMiss", err)
	}
	// The broken file is gone; a fresh Set works again.
	if err := d.Set(ctx, "k", []byte("v2"), time.Minute); err != nil {
		t.Fatalf("Set() after heal error = %v", err)
	}
	if got, _ := d.Get(ctx, "k"); string(got) != "v2" {
		t.Errorf("Get() = %q, want %q", got, "v2")
	}
}

func TestDiskCacheClearLeavesForeignFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	d, err := NewDiskCache(dir)
	if err != nil {
		t.Fatalf("NewDiskCache() error = %v", err)
	}
	d.Set(ctx, "k", []byte("v"), time.Minute)

	foreign := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(foreign, []byte("keep me"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := d.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := os.Stat(foreign); err != nil {
		t.Errorf("Clear() removed a foreign file: %v", err)
	}
}

func TestKeyGenerator(t *testing.T) {
	kg := NewKeyGenerator()

	k1 := kg.GenerateForPR("https://github.com/octo/app/pull/1")
	k2 := kg.GenerateForPR("https://github.com/octo/app/pull/2")
	if k1 == k2 {
		t.Error("distinct PRs produced the same key")
	}
	if k1 != kg.GenerateForPR("https://github.com/octo/app/pull/1") {
		t.Error("key generation is not deterministic")
	}
	if !strings.HasPrefix(k1, "diffpress:") {
		t.Errorf("key %q missing prefix", k1)
	}

	// Boundary-shifted inputs must not collide.
	if kg.Generate("ab", "c") == kg.Generate("a", "bc") {
		t.Error("Generate() collides on shifted input boundaries")
	}
}
