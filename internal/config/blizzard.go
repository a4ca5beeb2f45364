package config

import "time"

type Blizzard struct {
	APIBaseURL   string        `env:"BLIZZARD_API_BASE_URL" envDefault:"https://us.api.blizzard.com"`
	TokenURL     string        `env:"BLIZZARD_TOKEN_URL" envDefault:"https://oauth.battle.net/token"`
	Region       string        `env:"BLIZZARD_REGION" envDefault:"us"`
	Locale       string        `env:"BLIZZARD_LOCALE" envDefault:"en_US"`
	ClientID     string        `env:"BLIZZARD_CLIENT_ID,required"`
	ClientSecret string        `env:"BLIZZARD_CLIENT_SECRET,required" json:"-"`
	Timeout      time.Duration `env:"BLIZZARD_TIMEOUT" envDefault:"90s"`
}
