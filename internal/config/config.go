package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel       string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort       string   `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	// AllowedOrigins are the browser origins allowed to open a game socket besides the server host.
	AllowedOrigins []string `yaml:"allowed-origins" env:"ALLOWED_ORIGINS" env-separator:","`
	Redis          Redis    `yaml:"redis"`
	Game           Game     `yaml:"game"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Game holds the defaults used when a client does not choose markers or names itself.
type Game struct {
	HumanMarker    string        `yaml:"human-marker" env-default:"X"`
	HumanName      string        `yaml:"human-name" env-default:"Player"`
	ComputerMarker string        `yaml:"computer-marker" env-default:"O"`
	ComputerName   string        `yaml:"computer-name" env-default:"Computer"`
	SessionTTL     time.Duration `yaml:"session-ttl" env:"GAME_SESSION_TTL" env-default:"1h"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
