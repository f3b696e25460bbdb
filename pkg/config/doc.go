// Package config loads environment-backed configuration structs.
//
// Each configuration type is parsed from the environment exactly once per
// process; subsequent loads of the same type return the cached value. A .env
// file in the working directory is loaded on first use when present.
//
// Example:
//
//	type StorageConfig struct {
//		Backend  string `env:"STORAGE_TYPE" envDefault:"local"`
//		LocalDir string `env:"UPLOAD_DIR" envDefault:"./uploads"`
//	}
//
//	var cfg StorageConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
package config
