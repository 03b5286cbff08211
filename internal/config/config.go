package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageFile  = "file"
	StorageRedis = "redis"
)

type Config struct {
	LogLevel     string  `yaml:"log-level" json:"log-level" env-default:"info"`
	Port         string  `yaml:"port" json:"port" env-default:"8002"`
	UserDatabase string  `yaml:"user-database" json:"userDatabase"`
	Storage      Storage `yaml:"storage" json:"storage"`
}

type Storage struct {
	Type  string `yaml:"type" json:"type" env-default:"file"`
	Redis Redis  `yaml:"redis" json:"redis"`
}

type Redis struct {
	Host string `yaml:"host" json:"host" env-default:"localhost"`
	Port string `yaml:"port" json:"port" env-default:"6379"`
}

// Load - reads the configuration file (JSON or YAML by extension).
// A missing or malformed file is fatal at startup; the caller exits.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file %s: %w", path, err)
	}

	if config.Storage.Type == StorageFile && config.UserDatabase == "" {
		return nil, fmt.Errorf("config %s is missing key: userDatabase", path)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
