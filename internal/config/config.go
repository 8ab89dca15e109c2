// Package config loads the helmsman YAML configuration and applies
// environment variable overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the helmsman engine.
type Config struct {
	Storage Storage       `yaml:"storage"`
	Server  Server        `yaml:"server"`
	Alpaca  Alpaca        `yaml:"alpaca"`
	Logging Logging       `yaml:"logging"`
	Trading TradingConfig `yaml:"trading"`
}

// Storage holds paths for data persistence.
type Storage struct {
	DataDir    string `yaml:"data_dir"`
	SQLitePath string `yaml:"sqlite_path"`
}

// Server holds network listener configuration.
type Server struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	GRPCPort int    `yaml:"grpc_port"`
}

// Alpaca holds credentials and endpoints for the Alpaca broker API.
type Alpaca struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	BaseURL   string `yaml:"base_url"`
	DataURL   string `yaml:"data_url"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TradingConfig defines the risk and execution parameters of the engine.
type TradingConfig struct {
	// TotalRiskCapital is the capital base that capital pools divide.
	TotalRiskCapital float64 `yaml:"total_risk_capital"`

	// MaxRiskPerTradePct caps the loss a single trade may risk, as a
	// fraction of the pool's capital (e.g. 0.015 for 1.5%).
	MaxRiskPerTradePct float64 `yaml:"max_risk_per_trade_pct"`

	// MaxTotalDrawdownPct is the kill-switch threshold on total drawdown.
	MaxTotalDrawdownPct float64 `yaml:"max_total_drawdown_pct"`

	// CapitalPools maps a signal source tag to its fraction of
	// TotalRiskCapital. Each fraction must be within (0, 1].
	CapitalPools map[string]float64 `yaml:"capital_pools"`

	// DefaultPool is the pool used for unknown source tags.
	DefaultPool string `yaml:"default_pool"`

	// LiquidationLookaheadDays is how many days ahead the mandatory
	// liquidation check scans for market-closure holidays.
	LiquidationLookaheadDays int `yaml:"liquidation_lookahead_days"`

	// TickOffset is the price adjustment applied to closing limit orders in
	// the direction that favors a quick fill.
	TickOffset float64 `yaml:"tick_offset"`

	// CycleIntervalSecs is the heartbeat interval between reconciliation
	// cycles.
	CycleIntervalSecs int `yaml:"cycle_interval_secs"`

	// GatewayTimeoutSecs bounds each individual broker gateway call.
	GatewayTimeoutSecs int `yaml:"gateway_timeout_secs"`

	// PaperMode selects the in-memory simulator gateway instead of Alpaca.
	PaperMode bool `yaml:"paper_mode"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the YAML configuration file at the given path, parses it into a
// Config struct, applies environment variable overrides, fills defaults, and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults fills zero-valued trading parameters with safe defaults.
func applyDefaults(cfg *Config) {
	t := &cfg.Trading
	if t.LiquidationLookaheadDays == 0 {
		t.LiquidationLookaheadDays = 3
	}
	if t.TickOffset == 0 {
		t.TickOffset = 0.01
	}
	if t.CycleIntervalSecs == 0 {
		t.CycleIntervalSecs = 60
	}
	if t.GatewayTimeoutSecs == 0 {
		t.GatewayTimeoutSecs = 10
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// validate rejects configurations the engine cannot run with.
func (c *Config) validate() error {
	t := c.Trading
	if t.TotalRiskCapital <= 0 {
		return fmt.Errorf("trading.total_risk_capital must be positive, got %v", t.TotalRiskCapital)
	}
	if t.MaxRiskPerTradePct <= 0 || t.MaxRiskPerTradePct > 1 {
		return fmt.Errorf("trading.max_risk_per_trade_pct must be in (0,1], got %v", t.MaxRiskPerTradePct)
	}
	if t.MaxTotalDrawdownPct <= 0 || t.MaxTotalDrawdownPct > 1 {
		return fmt.Errorf("trading.max_total_drawdown_pct must be in (0,1], got %v", t.MaxTotalDrawdownPct)
	}
	if len(t.CapitalPools) == 0 {
		return fmt.Errorf("trading.capital_pools must define at least one pool")
	}
	for tag, frac := range t.CapitalPools {
		if frac <= 0 || frac > 1 {
			return fmt.Errorf("trading.capital_pools[%s] must be in (0,1], got %v", tag, frac)
		}
	}
	if t.DefaultPool == "" {
		return fmt.Errorf("trading.default_pool is required")
	}
	if _, ok := t.CapitalPools[t.DefaultPool]; !ok {
		return fmt.Errorf("trading.default_pool %q is not a defined capital pool", t.DefaultPool)
	}
	return nil
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}

	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		cfg.Alpaca.APISecret = v
	}
	if v := os.Getenv("ALPACA_BASE_URL"); v != "" {
		cfg.Alpaca.BaseURL = v
	}
	if v := os.Getenv("ALPACA_DATA_URL"); v != "" {
		cfg.Alpaca.DataURL = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Standard Alpaca env vars (highest priority — canonical names used by SDK).
	if v := os.Getenv("APCA_API_KEY_ID"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("APCA_API_SECRET_KEY"); v != "" {
		cfg.Alpaca.APISecret = v
	}
}
