// Copyright 2026 PR Review Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics provides Prometheus-backed metrics collection. All recording
// methods are safe on a nil receiver so the compression engine can run
// without a collector attached.
type Metrics struct {
	registry *prometheus.Registry

	inputChars       prometheus.Counter
	outputChars      prometheus.Counter
	compressionRatio prometheus.Histogram
	filesExcluded    prometheus.Counter
	hunksOmitted     prometheus.Counter
	linesCollapsed   prometheus.Counter
	truncations      prometheus.Counter

	fetchDuration *prometheus.HistogramVec
	fetchErrors   prometheus.Counter

	cacheRequests *prometheus.CounterVec
}

// NewMetrics creates a metrics collector with its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		inputChars: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "diffpress",
			Subsystem: "compress",
			Name:      "input_chars_total",
			Help:      "Total characters of raw diff input.",
		}),
		outputChars: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "diffpress",
			Subsystem: "compress",
			Name:      "output_chars_total",
			Help:      "Total characters of compressed output.",
		}),
		compressionRatio: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "diffpress",
			Subsystem: "compress",
			Name:      "ratio",
			Help:      "Output/input size ratio per compression call.",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		}),
		filesExcluded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "diffpress",
			Subsystem: "compress",
			Name:      "files_excluded_total",
			Help:      "File blocks dropped by the extension filter.",
		}),
		hunksOmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "diffpress",
			Subsystem: "compress",
			Name:      "hunks_omitted_total",
			Help:      "Hunks dropped by the per-file hunk cap.",
		}),
		linesCollapsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "diffpress",
			Subsystem: "compress",
			Name:      "lines_collapsed_total",
			Help:      "Lines hidden by run collapsing.",
		}),
		truncations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "diffpress",
			Subsystem: "compress",
			Name:      "truncations_total",
			Help:      "Compression calls that hit the global budget.",
		}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "diffpress",
			Subsystem: "platform",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of PR diff fetches.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"platform"}),
		fetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "diffpress",
			Subsystem: "platform",
			Name:      "fetch_errors_total",
			Help:      "Failed PR diff fetches.",
		}),
		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "diffpress",
			Subsystem: "cache",
			Name:      "requests_total",
			Help:      "Cache lookups by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.inputChars,
		m.outputChars,
		m.compressionRatio,
		m.filesExcluded,
		m.hunksOmitted,
		m.linesCollapsed,
		m.truncations,
		m.fetchDuration,
		m.fetchErrors,
		m.cacheRequests,
	)

	return m
}

// Registry exposes the underlying registry for gathering or serving.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordCompression records sizes and ratio for one compression call.
func (m *Metrics) RecordCompression(inputChars, outputChars int, truncated bool) {
	if m == nil {
		return
	}
	m.inputChars.Add(float64(inputChars))
	m.outputChars.Add(float64(outputChars))
	if inputChars > 0 {
		m.compressionRatio.Observe(float64(outputChars) / float64(inputChars))
	}
	if truncated {
		m.truncations.Inc()
	}
}

// RecordFilesExcluded records file blocks dropped by the filter.
func (m *Metrics) RecordFilesExcluded(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.filesExcluded.Add(float64(n))
}

// RecordHunksOmitted records hunks dropped by the per-file cap.
func (m *Metrics) RecordHunksOmitted(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.hunksOmitted.Add(float64(n))
}

// RecordLinesCollapsed records lines hidden by run collapsing.
func (m *Metrics) RecordLinesCollapsed(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.linesCollapsed.Add(float64(n))
}

// RecordFetch records one PR diff fetch.
func (m *Metrics) RecordFetch(platform string, duration time.Duration, success bool) {
	if m == nil {
		return
	}
	m.fetchDuration.WithLabelValues(platform).Observe(duration.Seconds())
	if !success {
		m.fetchErrors.Inc()
	}
}

// RecordCacheHit records a cache hit/miss.
func (m *Metrics) RecordCacheHit(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheRequests.WithLabelValues(result).Inc()
}
