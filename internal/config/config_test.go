package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testYAML = `
storage:
  data_dir: "/tmp/helmsman/data"
  sqlite_path: "/tmp/helmsman/helmsman.db"
server:
  host: "0.0.0.0"
  port: 8080
  grpc_port: 9090
alpaca:
  api_key: "test-key"
  api_secret: "test-secret"
  base_url: "https://paper-api.alpaca.markets"
  data_url: "https://data.alpaca.markets"
logging:
  level: "info"
  format: "json"
trading:
  total_risk_capital: 100000
  max_risk_per_trade_pct: 0.015
  max_total_drawdown_pct: 0.15
  capital_pools:
    long_term: 0.80
    short_term: 0.20
  default_pool: long_term
  liquidation_lookahead_days: 3
  tick_offset: 0.01
  cycle_interval_secs: 60
  gateway_timeout_secs: 10
  paper_mode: true
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "helmsman.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func clearEnvOverrides(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ALPACA_API_KEY", "ALPACA_API_SECRET", "ALPACA_BASE_URL", "ALPACA_DATA_URL",
		"APCA_API_KEY_ID", "APCA_API_SECRET_KEY",
		"DATA_DIR", "SQLITE_PATH", "LOG_LEVEL",
	} {
		os.Unsetenv(k)
	}
}

func TestLoad(t *testing.T) {
	clearEnvOverrides(t)
	path := writeTestConfig(t, testYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	// -- Storage --
	if cfg.Storage.DataDir != "/tmp/helmsman/data" {
		t.Errorf("Storage.DataDir = %q, want %q", cfg.Storage.DataDir, "/tmp/helmsman/data")
	}
	if cfg.Storage.SQLitePath != "/tmp/helmsman/helmsman.db" {
		t.Errorf("Storage.SQLitePath = %q, want %q", cfg.Storage.SQLitePath, "/tmp/helmsman/helmsman.db")
	}

	// -- Server --
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Server.GRPCPort != 9090 {
		t.Errorf("Server.GRPCPort = %d, want %d", cfg.Server.GRPCPort, 9090)
	}

	// -- Trading --
	tr := cfg.Trading
	if tr.TotalRiskCapital != 100000 {
		t.Errorf("Trading.TotalRiskCapital = %v, want %v", tr.TotalRiskCapital, 100000.0)
	}
	if tr.MaxRiskPerTradePct != 0.015 {
		t.Errorf("Trading.MaxRiskPerTradePct = %v, want %v", tr.MaxRiskPerTradePct, 0.015)
	}
	if tr.CapitalPools["long_term"] != 0.80 {
		t.Errorf("CapitalPools[long_term] = %v, want %v", tr.CapitalPools["long_term"], 0.80)
	}
	if tr.CapitalPools["short_term"] != 0.20 {
		t.Errorf("CapitalPools[short_term] = %v, want %v", tr.CapitalPools["short_term"], 0.20)
	}
	if tr.DefaultPool != "long_term" {
		t.Errorf("Trading.DefaultPool = %q, want %q", tr.DefaultPool, "long_term")
	}
	if !tr.PaperMode {
		t.Error("Trading.PaperMode = false, want true")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnvOverrides(t)
	path := writeTestConfig(t, `
trading:
  total_risk_capital: 50000
  max_risk_per_trade_pct: 0.01
  max_total_drawdown_pct: 0.10
  capital_pools:
    core: 1.0
  default_pool: core
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Trading.LiquidationLookaheadDays != 3 {
		t.Errorf("LiquidationLookaheadDays = %d, want 3", cfg.Trading.LiquidationLookaheadDays)
	}
	if cfg.Trading.TickOffset != 0.01 {
		t.Errorf("TickOffset = %v, want 0.01", cfg.Trading.TickOffset)
	}
	if cfg.Trading.CycleIntervalSecs != 60 {
		t.Errorf("CycleIntervalSecs = %d, want 60", cfg.Trading.CycleIntervalSecs)
	}
	if cfg.Trading.GatewayTimeoutSecs != 10 {
		t.Errorf("GatewayTimeoutSecs = %d, want 10", cfg.Trading.GatewayTimeoutSecs)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnvOverrides(t)
	path := writeTestConfig(t, testYAML)

	t.Setenv("ALPACA_API_KEY", "env-key")
	t.Setenv("APCA_API_KEY_ID", "apca-key")
	t.Setenv("SQLITE_PATH", "/elsewhere/state.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	// APCA_* is canonical and wins over ALPACA_*.
	if cfg.Alpaca.APIKey != "apca-key" {
		t.Errorf("Alpaca.APIKey = %q, want %q", cfg.Alpaca.APIKey, "apca-key")
	}
	if cfg.Storage.SQLitePath != "/elsewhere/state.db" {
		t.Errorf("Storage.SQLitePath = %q, want %q", cfg.Storage.SQLitePath, "/elsewhere/state.db")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	clearEnvOverrides(t)

	cases := []struct {
		name string
		yaml string
	}{
		{
			name: "zero capital",
			yaml: `
trading:
  total_risk_capital: 0
  max_risk_per_trade_pct: 0.01
  max_total_drawdown_pct: 0.10
  capital_pools: {core: 1.0}
  default_pool: core
`,
		},
		{
			name: "pool fraction above one",
			yaml: `
trading:
  total_risk_capital: 100000
  max_risk_per_trade_pct: 0.01
  max_total_drawdown_pct: 0.10
  capital_pools: {core: 1.5}
  default_pool: core
`,
		},
		{
			name: "unknown default pool",
			yaml: `
trading:
  total_risk_capital: 100000
  max_risk_per_trade_pct: 0.01
  max_total_drawdown_pct: 0.10
  capital_pools: {core: 1.0}
  default_pool: missing
`,
		},
		{
			name: "no pools",
			yaml: `
trading:
  total_risk_capital: 100000
  max_risk_per_trade_pct: 0.01
  max_total_drawdown_pct: 0.10
  default_pool: core
`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTestConfig(t, tc.yaml)
			if _, err := Load(path); err == nil {
				t.Errorf("Load() accepted invalid config %q", tc.name)
			}
		})
	}
}
