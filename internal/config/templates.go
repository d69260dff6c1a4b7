package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Lattice Pricer Configuration

[defaults]
# Market parameters used when a command-line flag is omitted.
spot = 100.0
strike = 100.0
# Annualized continuous risk-free rate (0.05 = 5%)
rate = 0.05
# Annualized volatility (0.2 = 20%)
volatility = 0.2
# Maturity in years
maturity = 1.0
# Continuous dividend yield
dividend_yield = 0.0
# Lattice time steps
steps = 100
# Lattice family: "binomial" or "trinomial"
family = "binomial"
# Exercise style: "european" or "american"
style = "european"

[convergence]
# Step counts for the convergence sweep (strictly ascending).
steps = [10, 50, 100, 500]

[engine]
# Worker goroutines for Greeks and convergence reprices (0 = all CPUs).
workers = 0

[logging]
# Log level: debug, info, warn, error
level = "info"
console = true
file = false
# file_path defaults to <config dir>/logs/pricer.log

[store]
# Record pricing runs for the 'history' command.
enabled = true
# path defaults to <config dir>/pricer.db

[ui]
color_enabled = true
`

// writeTemplateConfig creates a commented config template on first run so
// users have a starting point to edit.
func writeTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil // Already exists
	}

	return os.WriteFile(path, []byte(configTemplate), 0644)
}
