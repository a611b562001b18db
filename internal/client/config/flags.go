package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/screenmock/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string       base URL of the generation service
//	-d string       path of the local SQLite database
//	-i int          credits refresh interval in seconds (0 disables)
//	-t int          credits cache TTL in seconds
//	-device string  device profile, e.g. ios/17.2:390x844@3
//	-export string  directory for exported mockups
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-i", "-t", "-device", "-export"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the generation service")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	fs.StringVar(&cfg.ExportDir, "export", cfg.ExportDir, "export directory")
	refreshInterval := fs.Int("i", int(cfg.RefreshInterval.Seconds()), "credits refresh interval (in seconds)")
	creditsTTL := fs.Int("t", int(cfg.CreditsTTL.Seconds()), "credits cache TTL (in seconds)")
	device := fs.String("device", "", "device profile platform[/os]:WxH[@ratio]")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RefreshInterval = time.Duration(*refreshInterval) * time.Second
	cfg.CreditsTTL = time.Duration(*creditsTTL) * time.Second

	if *device != "" {
		d, err := ParseDevice(*device)
		if err != nil {
			panic(err)
		}
		cfg.Device = d
	}
}
