package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/screenmock/internal/flagx"
	"github.com/dmitrijs2005/screenmock/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Intervals are timex.Duration so they can be "5m" or integer nanoseconds.
type JsonConfig struct {
	BaseURL         string         `json:"base_url"`
	DatabasePath    string         `json:"database_path"`
	ChatID          string         `json:"chat_id"`
	LogLevel        string         `json:"log_level"`
	CreditsTTL      timex.Duration `json:"credits_ttl"`
	RefreshInterval timex.Duration `json:"refresh_interval"`
	Device          string         `json:"device"`
	HistoryKeep     int            `json:"history_keep"`
	ExportDir       string         `json:"export_dir"`
	S3Bucket        string         `json:"s3_bucket"`
	S3Region        string         `json:"s3_region"`
	S3BaseEndpoint  string         `json:"s3_base_endpoint"`
	S3AccessKey     string         `json:"s3_access_key"`
	S3SecretKey     string         `json:"s3_secret_key"`
}

// parseJson overlays Config with the non-empty values of the JSON file
// named by -c or -config. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFilePath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.BaseURL, jc.BaseURL)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.ChatID, jc.ChatID)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.ExportDir, jc.ExportDir)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)

	if jc.CreditsTTL.Duration > 0 {
		cfg.CreditsTTL = jc.CreditsTTL.Duration
	}
	if jc.RefreshInterval.Duration > 0 {
		cfg.RefreshInterval = jc.RefreshInterval.Duration
	}
	if jc.HistoryKeep != 0 {
		cfg.HistoryKeep = jc.HistoryKeep
	}
	if jc.Device != "" {
		d, err := ParseDevice(jc.Device)
		if err != nil {
			panic(err)
		}
		cfg.Device = d
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
