package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/authgate/internal/durationx"
	"github.com/dmitrijs2005/authgate/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-e string   environment name ("development" or "production")
//	-t string   access token lifetime, compact form (e.g., "15m")
//	-r string   refresh token lifetime, compact form (e.g., "7d")
//	-o string   allowed CORS origin
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Lifetime flags use the compact duration form and panic when malformed;
//     flags are an operator surface and a typo should stop startup.
//   - Secrets are deliberately not accepted as flags: argv is visible to
//     every process on the host.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-e", "-t", "-r", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.Env, "e", config.Env, "environment (development|production)")

	accessTokenTTL := fs.String("t", "", "access token lifetime (e.g. 15m)")
	refreshTokenTTL := fs.String("r", "", "refresh token lifetime (e.g. 7d)")

	fs.StringVar(&config.CORSOrigin, "o", config.CORSOrigin, "allowed CORS origin")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if *accessTokenTTL != "" {
		config.AccessTokenTTL = mustParseDuration(*accessTokenTTL)
	}
	if *refreshTokenTTL != "" {
		config.RefreshTokenTTL = mustParseDuration(*refreshTokenTTL)
	}
}

func mustParseDuration(s string) time.Duration {
	d, err := durationx.Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}
