// Package config loads build settings from YAML or JSON files and
// command-line overrides.
//
// Missing keys fall back to Defaults: asg_repetition 2, num_labels 256,
// depth 6, allo_num_states 3.
package config
