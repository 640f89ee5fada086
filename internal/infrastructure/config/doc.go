// Package config handles loading and validating Paycon client configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with .env files and environment variables
//   - Validation of required fields
//   - Default value handling
//
// Security Considerations:
//   - The bearer token is never part of the config file; it lives in the
//     session token file with restricted permissions
//   - Sensitive overrides should be set via environment variables
//
// Usage:
//
//	cfg, err := config.LoadOrDefault("~/.config/paycon/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.API.BaseURL)
package config
