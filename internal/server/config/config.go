// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment and command-line flags.
package config

import "time"

// Config holds runtime settings for the notekeeper server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the REST API.
//   - EndpointAddrGRPC: bind address for the gRPC health endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx).
//   - Env: logging profile, one of local, dev, prod.
//   - HTTPTimeout / HTTPIdleTimeout: read/write and keep-alive limits of the HTTP server.
//   - ShutdownTimeout: how long in-flight requests may run after a stop signal.
//   - DefaultUserName / DefaultUserEmail: owner seeded with id 1 at startup.
type Config struct {
	EndpointAddrHTTP string
	EndpointAddrGRPC string
	DatabaseDSN      string
	Env              string
	HTTPTimeout      time.Duration
	HTTPIdleTimeout  time.Duration
	ShutdownTimeout  time.Duration
	DefaultUserName  string
	DefaultUserEmail string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8000"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = "postgres://user:mysecretpassword@db:5432/kb_db?sslmode=disable"
	c.Env = "local"
	c.HTTPTimeout = 4 * time.Second
	c.HTTPIdleTimeout = 60 * time.Second
	c.ShutdownTimeout = 10 * time.Second
	c.DefaultUserName = "testuser"
	c.DefaultUserEmail = "test@test.com"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
