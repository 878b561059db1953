// Package config defines process configuration and its layered loading.
package config

// Config contains process configuration for the mudra server.
type Config struct {
	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath is the SQLite database path. Empty resolves to
	// ~/.mudra/mudra.db at startup.
	DBPath string `koanf:"db_path"`

	// StaticDir serves the browser client when non-empty.
	StaticDir string `koanf:"static_dir"`

	// TargetWins is the default first-to score for a match.
	TargetWins int `koanf:"target_wins"`

	// Difficulty is the default opponent strategy: random or adaptive.
	Difficulty string `koanf:"difficulty"`

	// StabilityThreshold is the consecutive-frame count a sign must exceed
	// before it is confirmed as the player's move.
	StabilityThreshold int `koanf:"stability_threshold"`

	// ExplorationRate is the probability of a random move under adaptive
	// difficulty.
	ExplorationRate float64 `koanf:"exploration_rate"`

	// CountdownTicks is the number of countdown steps before detection.
	CountdownTicks int `koanf:"countdown_ticks"`

	// CountdownIntervalMS is the delay between countdown steps.
	CountdownIntervalMS int `koanf:"countdown_interval_ms"`

	// ResultHoldMS is how long a round result stays on display.
	ResultHoldMS int `koanf:"result_hold_ms"`
}

// New returns a Config populated with defaults. The gameplay constants
// match the observed baseline behavior: first to 3, confirmation after 11
// consecutive frames, 30% exploration.
func New() *Config {
	return &Config{
		Addr:                ":8080",
		TargetWins:          3,
		Difficulty:          "adaptive",
		StabilityThreshold:  10,
		ExplorationRate:     0.3,
		CountdownTicks:      3,
		CountdownIntervalMS: 1000,
		ResultHoldMS:        2000,
	}
}
