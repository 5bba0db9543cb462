// internal/pkg/config/validators.go
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingRequiredConfig indicates a required configuration value
// was not provided.
var ErrMissingRequiredConfig = errors.New("missing required configuration")

type check struct {
	failed func(*Config) bool
	err    error
}

func runChecks(cfg *Config, checks []check) error {
	for _, c := range checks {
		if c.failed(cfg) {
			return c.err
		}
	}
	return nil
}

// unresolved reports placeholder values left behind when a secret
// could not be fetched at load time.
func unresolved(v string) bool {
	return v == "" || strings.Contains(v, "MISSING_")
}

// ProductionValidator rejects configurations that are acceptable in
// development but unsafe to ship.
type ProductionValidator struct{}

func (v *ProductionValidator) Validate(cfg *Config) error {
	return runChecks(cfg, []check{
		{
			failed: func(c *Config) bool { return unresolved(c.Database.Password) },
			err:    fmt.Errorf("%w: database password", ErrMissingRequiredConfig),
		},
		{
			failed: func(c *Config) bool { return unresolved(c.Security.JWTSecret) },
			err:    fmt.Errorf("%w: JWT secret", ErrMissingRequiredConfig),
		},
		{
			failed: func(c *Config) bool {
				return c.Security.JWTSecret == "development-secret-change-in-production"
			},
			err: errors.New("default JWT secret cannot be used in production"),
		},
		{
			failed: func(c *Config) bool { return c.Database.SSLMode == "disable" },
			err:    errors.New("database SSL must be enabled in production"),
		},
		{
			failed: func(c *Config) bool { return !c.Security.SecureHeaders },
			err:    errors.New("secure headers must be enabled in production"),
		},
		{
			failed: func(c *Config) bool { return len(c.Security.AllowedOrigins) == 0 },
			err:    errors.New("allowed origins must be configured in production"),
		},
		{
			failed: func(c *Config) bool {
				return c.Server.TLSEnabled && (c.Server.TLSCertFile == "" || c.Server.TLSKeyFile == "")
			},
			err: errors.New("TLS cert and key files must be provided when TLS is enabled"),
		},
	})
}

// SecurityValidator checks the security knobs regardless of environment
type SecurityValidator struct{}

func (v *SecurityValidator) Validate(cfg *Config) error {
	return runChecks(cfg, []check{
		{
			failed: func(c *Config) bool { return len(c.Security.JWTSecret) < 32 },
			err:    errors.New("JWT secret must be at least 32 characters"),
		},
		{
			failed: func(c *Config) bool { return c.Security.BcryptCost < 10 },
			err:    errors.New("bcrypt cost must be at least 10"),
		},
		{
			failed: func(c *Config) bool { return c.Security.BcryptCost > 15 },
			err:    errors.New("bcrypt cost should not exceed 15 for performance reasons"),
		},
		{
			failed: func(c *Config) bool {
				if !c.IsProduction() {
					return false
				}
				for _, origin := range c.Security.AllowedOrigins {
					if origin == "*" {
						return true
					}
				}
				return false
			},
			err: errors.New("wildcard origin (*) not allowed in production"),
		},
	})
}
