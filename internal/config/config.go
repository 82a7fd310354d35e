package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"pulsevo/pkg/config"
)

type Config struct {
	DB     config.DBConfig     `yaml:"db"`
	Redis  config.RedisConfig  `yaml:"redis"`
	JWT    config.JWTConfig    `yaml:"jwt"`
	AI     config.AIConfig     `yaml:"ai"`
	Server config.ServerConfig `yaml:"server"`
}

func Load() *Config {
	path := config.GetEnv("CONFIG_PATH", "config.yaml")

	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		log.Fatalf("failed to decode %s: %v", path, err)
	}

	// 环境变量覆盖
	config.OverrideDBFromEnv(&cfg.DB)
	config.OverrideRedisFromEnv(&cfg.Redis)
	config.OverrideJWTFromEnv(&cfg.JWT)
	config.OverrideAIFromEnv(&cfg.AI)
	config.OverrideServerFromEnv(&cfg.Server)

	if cfg.JWT.Audience == "" {
		cfg.JWT.Audience = "authenticated"
	}

	return &cfg
}
