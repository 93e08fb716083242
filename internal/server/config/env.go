package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvHTTPAddr         = "NOTEKEEPER_HTTP_ADDR"
	EnvGRPCAddr         = "NOTEKEEPER_GRPC_ADDR"
	EnvDatabaseDSN      = "NOTEKEEPER_DATABASE_DSN"
	EnvDatabaseURL      = "DATABASE_URL"
	EnvEnv              = "NOTEKEEPER_ENV"
	EnvHTTPTimeout      = "NOTEKEEPER_HTTP_TIMEOUT"
	EnvHTTPIdleTimeout  = "NOTEKEEPER_HTTP_IDLE_TIMEOUT"
	EnvShutdownTimeout  = "NOTEKEEPER_SHUTDOWN_TIMEOUT"
	EnvDefaultUserName  = "NOTEKEEPER_DEFAULT_USER_NAME"
	EnvDefaultUserEmail = "NOTEKEEPER_DEFAULT_USER_EMAIL"
)

// dotEnvFile is loaded into the process environment when present.
// Variables that are already set win over the file.
var dotEnvFile = ".env"

// parseEnv overlays values from the environment onto config.
// DATABASE_URL is honoured when NOTEKEEPER_DATABASE_DSN is not set.
// A malformed .env file or duration value panics.
func parseEnv(config *Config) {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
	applyEnv(config, os.LookupEnv)
}

func applyEnv(config *Config, lookup func(string) (string, bool)) {
	str := func(dst *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	dur := func(dst *time.Duration, key string) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		*dst = d
	}

	str(&config.EndpointAddrHTTP, EnvHTTPAddr)
	str(&config.EndpointAddrGRPC, EnvGRPCAddr)
	str(&config.DatabaseDSN, EnvDatabaseURL)
	str(&config.DatabaseDSN, EnvDatabaseDSN)
	str(&config.Env, EnvEnv)
	str(&config.DefaultUserName, EnvDefaultUserName)
	str(&config.DefaultUserEmail, EnvDefaultUserEmail)

	dur(&config.HTTPTimeout, EnvHTTPTimeout)
	dur(&config.HTTPIdleTimeout, EnvHTTPIdleTimeout)
	dur(&config.ShutdownTimeout, EnvShutdownTimeout)
}
