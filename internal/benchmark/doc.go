// SPDX-License-Identifier: MPL-2.0

// Package benchmark provides benchmarks for PGO profile generation.
// These benchmarks cover the hot paths of a listing run:
//   - INF decoding and parsing
//   - The catalog, disk table and source file passes
//   - End-to-end driver runs with text and structured output
//   - CUE configuration loading
//
// To generate a PGO profile, run:
//
//	go test -run=^$ -bench=. -cpuprofile=default.pgo ./internal/benchmark
package benchmark
