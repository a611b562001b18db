// Package config loads runtime configuration for the screenmock CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config. Empty values are ignored.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string       base URL of the generation service
//	-d string       local database path
//	-i int          credits refresh interval (seconds, 0 disables)
//	-t int          credits cache TTL (seconds)
//	-device string  device profile, platform[/os]:WIDTHxHEIGHT[@ratio]
//	-export string  export directory
//
// # JSON schema
//
//	{
//	  "base_url": "https://s4ofd6.buildship.run",
//	  "database_path": "screenmock.db",
//	  "credits_ttl": "5m",
//	  "refresh_interval": "1m",
//	  "device": "android/14:412x915@2.625",
//	  "history_keep": 100,
//	  "export_dir": "exports",
//	  "s3_bucket": "mockups",
//	  "s3_region": "us-east-1",
//	  "s3_base_endpoint": "http://127.0.0.1:9000",
//	  "s3_access_key": "minioadmin",
//	  "s3_secret_key": "minioadmin"
//	}
//
// S3 settings only matter for "export s3"; without a bucket the CLI exports
// to the local directory.
package config
