// Package config loads application configuration from environment
// variables, .env files and YAML files into plain structs.
//
// It wraps github.com/caarlos0/env/v11, github.com/joho/godotenv and
// gopkg.in/yaml.v3:
//
//   - Load parses the environment into a struct and caches one copy per
//     type for the lifetime of the process.
//   - LoadEnv reads one or more .env files into the process environment
//     without overriding variables that are already set.
//   - LoadFile reads a YAML file and then applies environment overrides.
//   - MustLoad and MustLoadEnv panic on failure for startup code.
//   - ResetCache and ForceReload drop cached values, mostly for tests.
//
// # Defaults
//
// Loaders only touch fields whose source has a value, so defaults are set
// by pre-filling the struct:
//
//	cfg := token.DefaultConfig()
//	if err := config.LoadFile("loginlink.yaml", &cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Precedence, lowest first: struct defaults, YAML file, environment.
//
// # Error Handling
//
// The package defines sentinel errors that can be compared with errors.Is:
//
//   - ErrParsingConfig: env vars could not be parsed into the struct.
//   - ErrReadingFile: the YAML file could not be read.
//   - ErrParsingFile: the YAML file could not be decoded.
//   - ErrLoadingEnvFile: a .env file could not be read.
//   - ErrNilPointer: nil pointer passed to a loader.
package config
