package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Sniper   Sniper
	Blizzard Blizzard
	Postgres Postgres
	Redis    Redis
	Bot      Bot
	Server   Server
}

type Bot struct {
	Token   string `env:"BOT_TOKEN,required"`
	ChatID  int64  `env:"BOT_CHAT_ID,required"`
	AdminID int64  `env:"BOT_ADMIN_ID,required"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
