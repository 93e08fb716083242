package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/notekeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     HTTP bind address (e.g., ":8000")
//	-g string     gRPC bind address (e.g., ":50051")
//	-d string     PostgreSQL DSN
//	-e string     environment: local, dev or prod
//	-t duration   HTTP read/write timeout
//	-i duration   HTTP idle timeout
//	-s duration   graceful shutdown timeout
//	-u string     default user name
//	-m string     default user email
//
// os.Args is first filtered with flagx.FilterArgs so that -c/-config and
// unknown flags do not reach the flag set.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-e", "-t", "-i", "-s", "-u", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run the HTTP server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run the gRPC server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.Env, "e", config.Env, "environment (local, dev, prod)")
	fs.DurationVar(&config.HTTPTimeout, "t", config.HTTPTimeout, "HTTP read/write timeout")
	fs.DurationVar(&config.HTTPIdleTimeout, "i", config.HTTPIdleTimeout, "HTTP idle timeout")
	fs.DurationVar(&config.ShutdownTimeout, "s", config.ShutdownTimeout, "graceful shutdown timeout")
	fs.StringVar(&config.DefaultUserName, "u", config.DefaultUserName, "default user name")
	fs.StringVar(&config.DefaultUserEmail, "m", config.DefaultUserEmail, "default user email")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
