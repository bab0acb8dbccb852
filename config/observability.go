package config

// StatsdConfig controls StatsD metric emission. Disabled by default; when
// enabled without an address the client stays inert.
type StatsdConfig struct {
	Enabled bool   `env:"ENABLED" envDefault:"false"`
	Address string `env:"ADDR"    envDefault:""`
	Prefix  string `env:"PREFIX"  envDefault:"hirewire"`
}
