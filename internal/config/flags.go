package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/marketpro/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the remote document store
//	-u string   collection path for account documents
//	-t int      store request timeout in seconds
//	-s string   path of the durable session database
//
// The function filters os.Args to only the flags it knows about, using
// flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-u", "-t", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StoreBaseURL, "a", cfg.StoreBaseURL, "base URL of the remote store")
	fs.StringVar(&cfg.UsersPath, "u", cfg.UsersPath, "collection path for account documents")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "store request timeout (in seconds)")
	fs.StringVar(&cfg.SessionDBPath, "s", cfg.SessionDBPath, "path of the durable session database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
