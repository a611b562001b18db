package config

import (
	"time"

	"github.com/dmitrijs2005/screenmock/internal/client/models"
)

// Config holds runtime settings for the screenmock CLI.
//
// Units: CreditsTTL and RefreshInterval are time.Duration values.
// A zero RefreshInterval disables the background credits watcher.
type Config struct {
	BaseURL      string
	DatabasePath string
	ChatID       string
	LogLevel     string

	CreditsTTL      time.Duration
	RefreshInterval time.Duration

	Device      models.DeviceContext
	HistoryKeep int

	ExportDir      string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://s4ofd6.buildship.run"
	c.DatabasePath = "screenmock.db"
	c.ChatID = "rodgetech"
	c.LogLevel = "info"
	c.CreditsTTL = 5 * time.Minute
	c.RefreshInterval = time.Minute
	c.Device = models.DeviceContext{
		Platform:   "ios",
		OSVersion:  "17.0",
		Width:      390,
		Height:     844,
		PixelRatio: 3,
		FontScale:  1,
	}
	c.HistoryKeep = 100
	c.ExportDir = "exports"
	c.S3Region = "us-east-1"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
