// Copyright 2026 PR Review Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// KeyGenerator derives stable cache keys from request inputs.
type KeyGenerator struct {
	prefix string
}

// NewKeyGenerator returns a generator using the standard key prefix.
func NewKeyGenerator() *KeyGenerator {
	return &KeyGenerator{prefix: "diffpress"}
}

// Generate hashes the inputs into a prefixed key. A NUL separator between
// inputs keeps ("ab","c") and ("a","bc") from colliding.
func (kg *KeyGenerator) Generate(inputs ...string) string {
	h := sha256.New()
	for _, input := range inputs {
		h.Write([]byte(input))
		h.Write([]byte{0})
	}
	return kg.prefix + ":" + hex.EncodeToString(h.Sum(nil))
}

// GenerateForPR returns the cache key for a pull request's diff.
func (kg *KeyGenerator) GenerateForPR(prURL string) string {
	return kg.Generate("pr-diff", prURL)
}
