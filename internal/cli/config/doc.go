// Package config defines the redislight CLI configuration.
//
//   - spec.go: Config struct, defaults and verification
//   - loader.go: layered loading through confloader (~/.redislight/config.yaml)
package config
