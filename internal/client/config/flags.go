package config

import (
	"flag"
	"os"
	"time"

	"github.com/rferrari/mycommunity-app-sub000/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend API
//	-d string   path to the local client database
//	-f int      feed poll interval in seconds
//	-b int      balance poll interval in seconds
//
// The function filters os.Args to only the flags it owns, using
// flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-f", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local client database")
	feedPoll := fs.Int("f", int(cfg.FeedPollInterval.Seconds()), "feed poll interval (in seconds)")
	balancePoll := fs.Int("b", int(cfg.BalancePollInterval.Seconds()), "balance poll interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.FeedPollInterval = time.Duration(*feedPoll) * time.Second
	cfg.BalancePollInterval = time.Duration(*balancePoll) * time.Second
}
