package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rustyeddy/tradelog/metrics"
	"github.com/rustyeddy/tradelog/risk"
	"gopkg.in/yaml.v3"
)

// Config represents the complete journal configuration
type Config struct {
	Account     AccountConfig           `json:"account" yaml:"account"`
	Risk        RiskConfig              `json:"risk" yaml:"risk"`
	Journal     JournalConfig           `json:"journal" yaml:"journal"`
	Log         LogConfig               `json:"log" yaml:"log"`
	Metrics     MetricsConfig           `json:"metrics" yaml:"metrics"`
	Instruments string                  `json:"instruments,omitempty" yaml:"instruments,omitempty"` // optional YAML overrides file
	Checklist   []metrics.ChecklistItem `json:"checklist,omitempty" yaml:"checklist,omitempty"`
}

// AccountConfig seeds a new trading account
type AccountConfig struct {
	Name     string  `json:"name" yaml:"name"`
	Currency string  `json:"currency" yaml:"currency"`
	Balance  float64 `json:"balance" yaml:"balance"`
}

// RiskConfig is the default risk applied when sizing a trade
type RiskConfig struct {
	Type  string  `json:"type" yaml:"type"`   // "percent" or "fixed"
	Value float64 `json:"value" yaml:"value"` // 1 == 1% for percent
}

type JournalConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
}

type LogConfig struct {
	Level    string `json:"level" yaml:"level"`
	Encoding string `json:"encoding" yaml:"encoding"` // "console" or "json"
}

type MetricsConfig struct {
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
}

// RiskSettings converts the risk section into the sizing engine's type.
func (c *Config) RiskSettings() (risk.Config, error) {
	rt, err := risk.ParseRiskType(c.Risk.Type)
	if err != nil {
		return risk.Config{}, err
	}
	return risk.Config{Type: rt, Value: c.Risk.Value}, nil
}

// LoadFromFile loads configuration from a file (YAML or JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// ApplyEnv loads a .env file when present and lets TRADELOG_* variables
// override file settings.
func (c *Config) ApplyEnv(envFiles ...string) error {
	if err := godotenv.Load(envFiles...); err != nil && len(envFiles) > 0 {
		return fmt.Errorf("load env: %w", err)
	}

	if v := os.Getenv("TRADELOG_DB"); v != "" {
		c.Journal.DBPath = v
	}
	if v := os.Getenv("TRADELOG_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("TRADELOG_RISK_TYPE"); v != "" {
		c.Risk.Type = v
	}
	if v := os.Getenv("TRADELOG_RISK_VALUE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("TRADELOG_RISK_VALUE: %w", err)
		}
		c.Risk.Value = f
	}
	if v := os.Getenv("TRADELOG_ACCOUNT_CURRENCY"); v != "" {
		c.Account.Currency = strings.ToUpper(v)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Account.Balance <= 0 {
		return fmt.Errorf("account.balance must be positive")
	}
	rc, err := c.RiskSettings()
	if err != nil {
		return fmt.Errorf("risk.type: %w", err)
	}
	if rc.Value <= 0 {
		return fmt.Errorf("risk.value must be positive")
	}
	if rc.Type == risk.RiskPercent && rc.Value > 100 {
		return fmt.Errorf("risk.value must be at most 100 for percent risk")
	}
	if c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path is required")
	}
	if c.Log.Encoding != "" && c.Log.Encoding != "console" && c.Log.Encoding != "json" {
		return fmt.Errorf("log.encoding must be 'console' or 'json'")
	}
	if c.Metrics.InitialCapital < 0 {
		return fmt.Errorf("metrics.initial_capital must not be negative")
	}
	for _, it := range c.Checklist {
		if it.ID == "" {
			return fmt.Errorf("checklist items need an id")
		}
		if it.Weight < 0 {
			return fmt.Errorf("checklist item %s: weight must not be negative", it.ID)
		}
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Name:     "main",
			Currency: "USD",
			Balance:  10000,
		},
		Risk: RiskConfig{
			Type:  "percent",
			Value: 1,
		},
		Journal: JournalConfig{
			DBPath: "./tradelog.sqlite",
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "console",
		},
		Metrics: MetricsConfig{
			InitialCapital: metrics.DefaultInitialCapital,
		},
		Checklist: []metrics.ChecklistItem{
			{ID: "htf-trend", Label: "Higher timeframe trend agrees", Weight: 25, Category: "structure"},
			{ID: "key-level", Label: "Entry at a key level", Weight: 25, Category: "structure"},
			{ID: "session", Label: "Inside an active session", Weight: 15, Category: "timing"},
			{ID: "no-news", Label: "No high impact news", Weight: 15, Category: "timing"},
			{ID: "confirmation", Label: "Entry confirmation candle", Weight: 20, Category: "execution"},
		},
	}
}
