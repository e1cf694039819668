// Package config loads typed configuration from environment variables and
// .env files.
//
// Load parses a struct tagged for github.com/caarlos0/env once per type and
// caches the result for the process; Parse does the same without caching and
// can read additional .env files. Forms is the configuration of the forms
// runtime and its demo command.
//
//	var cfg config.Forms
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
package config
