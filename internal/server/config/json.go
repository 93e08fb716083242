package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/notekeeper/internal/flagx"
	"github.com/dmitrijs2005/notekeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations
// accept both "15s" style strings and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC string         `json:"endpoint_addr_grpc"`
	DatabaseDSN      string         `json:"database_dsn"`
	Env              string         `json:"env"`
	HTTPTimeout      timex.Duration `json:"http_timeout"`
	HTTPIdleTimeout  timex.Duration `json:"http_idle_timeout"`
	ShutdownTimeout  timex.Duration `json:"shutdown_timeout"`
	DefaultUserName  string         `json:"default_user_name"`
	DefaultUserEmail string         `json:"default_user_email"`
}

// parseJson overlays values from the file named by -c/-config onto config.
// Keys missing from the file keep their current values. An unreadable or
// malformed file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.Env, c.Env)
	setString(&config.DefaultUserName, c.DefaultUserName)
	setString(&config.DefaultUserEmail, c.DefaultUserEmail)

	if c.HTTPTimeout.Duration != 0 {
		config.HTTPTimeout = c.HTTPTimeout.Duration
	}
	if c.HTTPIdleTimeout.Duration != 0 {
		config.HTTPIdleTimeout = c.HTTPIdleTimeout.Duration
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
