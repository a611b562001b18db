package devserver

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/screenmock/internal/flagx"
	"github.com/dmitrijs2005/screenmock/internal/timex"
)

// Config holds runtime settings for the dev server.
//
// Fields:
//   - Addr: bind address of the HTTP listener.
//   - SecretKey: HMAC secret for HS256 tokens. Development only.
//   - TokenValidity: lifetime of tokens issued by /dev/token.
//   - StartScreenCredits / StartRevisionCredits: allowance of a new user.
type Config struct {
	Addr                 string
	SecretKey            string
	TokenValidity        time.Duration
	StartScreenCredits   int
	StartRevisionCredits int
}

func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.SecretKey = "secretKey"
	c.TokenValidity = 24 * time.Hour
	c.StartScreenCredits = 5
	c.StartRevisionCredits = 10
}

// LoadConfig applies defaults, then the JSON file named by -c/-config,
// then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}

type JsonConfig struct {
	Addr                 string         `json:"addr"`
	SecretKey            string         `json:"secret_key"`
	TokenValidity        timex.Duration `json:"token_validity"`
	StartScreenCredits   int            `json:"start_screen_credits"`
	StartRevisionCredits int            `json:"start_revision_credits"`
}

func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.Addr != "" {
		cfg.Addr = jc.Addr
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.TokenValidity.Duration > 0 {
		cfg.TokenValidity = jc.TokenValidity.Duration
	}
	if jc.StartScreenCredits > 0 {
		cfg.StartScreenCredits = jc.StartScreenCredits
	}
	if jc.StartRevisionCredits > 0 {
		cfg.StartRevisionCredits = jc.StartRevisionCredits
	}
}

// parseFlags reads -a (addr), -k (secret), -s and -r (starting credits).
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-k", "-s", "-r"})

	fs := flag.NewFlagSet("devserver", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "listen address")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "token signing secret")
	fs.IntVar(&cfg.StartScreenCredits, "s", cfg.StartScreenCredits, "screen credits of a new user")
	fs.IntVar(&cfg.StartRevisionCredits, "r", cfg.StartRevisionCredits, "revision credits of a new user")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
