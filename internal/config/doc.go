// Package config provides configuration structures and utilities for phishmodel.
// It defines the training defaults, the scoring options, and the optional
// .phishmodel YAML file that can override them.
package config
