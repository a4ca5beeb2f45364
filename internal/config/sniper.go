package config

import "time"

type Sniper struct {
	// ShoppingListPath points at the JSON shopping configuration.
	ShoppingListPath string `env:"SNIPER_SHOPPING_LIST" envDefault:"shopping.json"`

	// Funds caps how much copper a single session may spend.
	Funds int64 `env:"SNIPER_FUNDS" envDefault:"100000000"`

	ScanInterval time.Duration `env:"SNIPER_SCAN_INTERVAL" envDefault:"2m"`
	Queue        string        `env:"SNIPER_QUEUE" envDefault:"scans"`

	// AutoBuy executes deals without waiting for a command from the
	// control bot.
	AutoBuy bool `env:"SNIPER_AUTO_BUY" envDefault:"true"`
}
