package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Server struct {
	Port   string `yaml:"port" env:"PORT" env-default:"8080"`
	WebDir string `yaml:"web_dir" env:"WEB_DIR" env-default:"web"`
}

type Agent struct {
	// Mode selects the client: "http" or "mock". Empty auto-detects from
	// BaseURL.
	Mode    string        `yaml:"mode" env:"AGENT_MODE"`
	BaseURL string        `yaml:"base_url" env:"AGENT_BASE_URL"`
	Timeout time.Duration `yaml:"timeout" env:"AGENT_TIMEOUT" env-default:"30s"`
}

type Chat struct {
	CannedReplyDelay time.Duration `yaml:"canned_reply_delay" env:"CANNED_REPLY_DELAY" env-default:"600ms"`
}

type Session struct {
	// RedisAddr empty keeps conversations in process memory only.
	RedisAddr string        `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisDB   int           `yaml:"redis_db" env:"REDIS_DB"`
	TTL       time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"24h"`
}

type Config struct {
	Server  Server  `yaml:"server"`
	Agent   Agent   `yaml:"agent"`
	Chat    Chat    `yaml:"chat"`
	Session Session `yaml:"session"`
}

// Load reads the optional yaml config and overlays environment variables.
func Load(cfgPath string) (*Config, error) {
	var cfg Config
	if cfgPath != "" {
		if err := cleanenv.ReadConfig(cfgPath, &cfg); err != nil {
			return nil, err
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
