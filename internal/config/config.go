package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	TCPAddr  string  `yaml:"tcp-addr" env:"TCP_ADDR" env-default:":8080"`
	HTTPPort string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Session  Session `yaml:"session"`
	Redis    Redis   `yaml:"redis"`
}

type Session struct {
	IngressBuffer int           `yaml:"ingress-buffer" env:"SESSION_INGRESS_BUFFER" env-default:"32"`
	MoveTimeout   time.Duration `yaml:"move-timeout" env:"SESSION_MOVE_TIMEOUT" env-default:"0s"`
	// OnDisconnect is what happens to the survivor of a mid-round disconnect: "requeue" or "close".
	OnDisconnect string `yaml:"on-disconnect" env:"SESSION_ON_DISCONNECT" env-default:"requeue"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations from the yaml file at path, or from the environment alone when there is no such file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to load config from environment: %w", err)
		}

		if err = config.validate(); err != nil {
			return nil, err
		}

		return config, nil
	}

	if err = cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err = config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) validate() error {
	if that.Session.IngressBuffer < 1 {
		return fmt.Errorf("%w: session.ingress-buffer must be at least 1, got %d", ErrInvalidConfig, that.Session.IngressBuffer)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that *Session) RequeueOnDisconnect() bool {
	return that.OnDisconnect != "close"
}

// HTTPEnabled - the ops server is turned off with port "0".
func (that *Config) HTTPEnabled() bool {
	return that.HTTPPort != "" && that.HTTPPort != "0"
}
