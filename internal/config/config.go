package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

var (
	ErrInvalidMaxSessions = errors.New("max sessions must be positive")
	ErrInvalidSessionTTL  = errors.New("session ttl is too short")
)

// MinSessionTTL keeps the janitor interval (half the TTL) above zero.
const MinSessionTTL = time.Second

type Config struct {
	LogLevel    string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort    string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort  string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	BoardSize   int    `yaml:"board-size" env:"BOARD_SIZE" env-default:"15"`
	MaxSessions int    `yaml:"max-sessions" env:"MAX_SESSIONS" env-default:"1000"`

	// SessionTTL is how long an untouched game is kept in memory.
	SessionTTL time.Duration `yaml:"session-ttl" env:"SESSION_TTL" env-default:"1h"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (that *Config) Validate() error {
	if that.BoardSize < 1 || that.BoardSize > entity.MaxBoardSize {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidBoardSize, that.BoardSize)
	}

	if that.MaxSessions < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxSessions, that.MaxSessions)
	}

	if that.SessionTTL < MinSessionTTL {
		return fmt.Errorf("%w: %s, minimum is %s", ErrInvalidSessionTTL, that.SessionTTL, MinSessionTTL)
	}

	return nil
}
