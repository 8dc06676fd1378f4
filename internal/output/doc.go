// Package output encodes analysis results and envelopes for files and stdout.
//
// # JSON Encoding Rules
//
// DeterministicEncode produces byte-identical outputs for identical inputs:
//
//  1. Object keys are sorted alphabetically
//  2. Floats are rounded to at most 6 decimal places
//  3. Nil pointers and nil slices are omitted; empty slices stay as []
//  4. Embedded structs without a JSON name are flattened into their parent
//
// # Other Formats
//
// Encode also renders YAML (gopkg.in/yaml.v3) and TOML (BurntSushi/toml).
// WriteFile compresses by extension: ".zst" uses zstd and ".gz" uses gzip.
//
// # Snapshot Comparison
//
// CompareSnapshots compares two JSON documents while ignoring the per-run
// fields listed in SnapshotExcludeFields.
package output
