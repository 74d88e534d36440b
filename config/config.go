package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/invopop/jsonschema"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/tradesim/sim"
)

const envPrefix = "tradesim"

// Config represents the complete tradesim configuration
type Config struct {
	Simulation sim.Params    `json:"simulation" yaml:"simulation" mapstructure:"simulation"`
	Seed       int64         `json:"seed" yaml:"seed" mapstructure:"seed" jsonschema:"description=Random seed. 0 picks a fresh seed for every run"`
	Batch      BatchConfig   `json:"batch" yaml:"batch" mapstructure:"batch"`
	Journal    JournalConfig `json:"journal" yaml:"journal" mapstructure:"journal"`
	Logging    LoggingConfig `json:"logging" yaml:"logging" mapstructure:"logging"`
}

// BatchConfig controls Monte-Carlo batches
type BatchConfig struct {
	Runs    int `json:"runs" yaml:"runs" mapstructure:"runs" validate:"gte=1" jsonschema:"minimum=1"`
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers" validate:"gte=1" jsonschema:"minimum=1"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type       string `json:"type" yaml:"type" mapstructure:"type" validate:"oneof=none csv sqlite" jsonschema:"enum=none,enum=csv,enum=sqlite"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty" mapstructure:"db_path"`
	RunsFile   string `json:"runs_file,omitempty" yaml:"runs_file,omitempty" mapstructure:"runs_file"`
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty" mapstructure:"trades_file" jsonschema:"description=CSV trades file. A .xz suffix writes it compressed"`
}

// LoggingConfig contains logger parameters
type LoggingConfig struct {
	Level       string `json:"level" yaml:"level" mapstructure:"level" validate:"oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
	Encoding    string `json:"encoding" yaml:"encoding" mapstructure:"encoding" validate:"oneof=console json" jsonschema:"enum=console,enum=json"`
	Development bool   `json:"development" yaml:"development" mapstructure:"development"`
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Simulation: sim.Params{
			StartBalance:       1000,
			WinRate:            50,
			TakeProfit:         10,
			StopLoss:           5,
			TradeCount:         20,
			LimitOrderFeeRate:  0.02,
			MarketOrderFeeRate: 0.05,
		},
		Batch: BatchConfig{
			Runs:    1000,
			Workers: 4,
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./tradesim.sqlite",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Load reads path (YAML or JSON by extension) over the defaults and applies
// TRADESIM_* environment overrides, e.g. TRADESIM_SIMULATION_WIN_RATE. An
// empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("simulation.start_balance", d.Simulation.StartBalance)
	v.SetDefault("simulation.win_rate", d.Simulation.WinRate)
	v.SetDefault("simulation.take_profit", d.Simulation.TakeProfit)
	v.SetDefault("simulation.stop_loss", d.Simulation.StopLoss)
	v.SetDefault("simulation.trade_count", d.Simulation.TradeCount)
	v.SetDefault("simulation.limit_order_fee_rate", d.Simulation.LimitOrderFeeRate)
	v.SetDefault("simulation.market_order_fee_rate", d.Simulation.MarketOrderFeeRate)

	v.SetDefault("seed", d.Seed)

	v.SetDefault("batch.runs", d.Batch.Runs)
	v.SetDefault("batch.workers", d.Batch.Workers)

	v.SetDefault("journal.type", d.Journal.Type)
	v.SetDefault("journal.db_path", d.Journal.DBPath)
	v.SetDefault("journal.runs_file", d.Journal.RunsFile)
	v.SetDefault("journal.trades_file", d.Journal.TradesFile)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.encoding", d.Logging.Encoding)
	v.SetDefault("logging.development", d.Logging.Development)
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
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

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks if the configuration is valid. All problems are reported
// together.
func (c *Config) Validate() error {
	err := validateStruct(c)

	switch c.Journal.Type {
	case "csv":
		if c.Journal.RunsFile == "" || c.Journal.TradesFile == "" {
			err = multierr.Append(err, errors.New("journal runs_file and trades_file required for CSV type"))
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			err = multierr.Append(err, errors.New("journal db_path required for SQLite type"))
		}
	}

	return err
}

// ValidateParams checks simulation parameters given outside a config file,
// such as command line flags.
func ValidateParams(p sim.Params) error {
	return validateStruct(p)
}

func validateStruct(v any) error {
	verr := validate.Struct(v)
	if verr == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(verr, &fieldErrs) {
		return verr
	}
	var err error
	for _, fe := range fieldErrs {
		err = multierr.Append(err, fieldError(fe))
	}
	return err
}

func fieldError(fe validator.FieldError) error {
	// Namespace is "Config.simulation.win_rate"; drop the struct name.
	_, field, _ := strings.Cut(fe.Namespace(), ".")

	switch fe.Tag() {
	case "gte":
		return fmt.Errorf("%s must be >= %s", field, fe.Param())
	case "lte":
		return fmt.Errorf("%s must be <= %s", field, fe.Param())
	case "oneof":
		return fmt.Errorf("%s must be one of [%s]", field, fe.Param())
	default:
		return fmt.Errorf("%s failed %q validation", field, fe.Tag())
	}
}

// Schema returns the JSON schema of the configuration file.
func Schema() ([]byte, error) {
	r := jsonschema.Reflector{
		ExpandedStruct:            true,
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	schema := r.Reflect(&Config{})
	schema.Title = "tradesim-config"
	schema.Description = "Configuration file for tradesim"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
