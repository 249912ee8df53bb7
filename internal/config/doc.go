// Package config provides the configuration system for structlab.
//
// Settings resolve in three layers with higher layers overriding lower:
//
//	3. Environment variables  (STRUCTLAB_*)
//	2. Config file            (TOML or YAML, chosen by extension)
//	1. Built-in defaults
//
// # Sub-packages
//
//   - loader: file decoding and environment overlay
//   - watcher: config file watching for live reload
//
// # Basic Usage
//
// Load configuration with defaults plus a file and the environment:
//
//	cfg, err := loader.Load("structlab.toml")
//	if err != nil {
//		return err
//	}
//	if err := cfg.Validate(); err != nil {
//		return err
//	}
package config
