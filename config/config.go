// Package config holds the settings of an analysis, read from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/offshore"
	"github.com/etnz/offshore/cvm"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Columns overrides the candidate column names of dataset fields, e.g.
//
//	columns:
//	  positions:
//	    market_value: [VL_MERC_POS_FINAL, VL_MERC]
type Columns struct {
	Positions map[string][]string `yaml:"positions,omitempty"`
	Funds     map[string][]string `yaml:"funds,omitempty"`
	Managers  map[string][]string `yaml:"managers,omitempty"`
}

// Config is the content of the configuration file.
type Config struct {
	Currency        string   `yaml:"currency"`
	InvestmentTypes []string `yaml:"investmentTypes,omitempty"`
	Role            string   `yaml:"role"`
	TopN            int      `yaml:"topN"`
	MinMatchRate    float64  `yaml:"minMatchRate"`
	Placeholder     string   `yaml:"placeholder"`
	Encoding        string   `yaml:"encoding"`
	Columns         Columns  `yaml:"columns,omitempty"`
}

// Default returns the settings used without a configuration file.
func Default() *Config {
	return &Config{
		Currency:     offshore.DefaultCurrency,
		Role:         offshore.RoleManager.String(),
		TopN:         20,
		MinMatchRate: 0,
		Placeholder:  offshore.DefaultPlaceholder,
		Encoding:     cvm.Latin1.String(),
	}
}

// Load reads the configuration file over the defaults. A missing file is not
// an error, it yields the defaults.
func Load(configPath string) (*Config, error) {
	config := Default()
	if configPath == "" {
		return config, nil
	}
	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", configPath, err)
	}
	return config, nil
}

// Dump writes the configuration file.
func Dump(configPath string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if _, err := offshore.ParseRole(c.Role); err != nil {
		errs = append(errs, err)
	}
	if _, err := cvm.ParseEncoding(c.Encoding); err != nil {
		errs = append(errs, err)
	}
	if c.MinMatchRate < 0 || c.MinMatchRate > 1 {
		errs = append(errs, fmt.Errorf("%w: %v", offshore.ErrMatchRate, c.MinMatchRate))
	}
	if c.TopN < 0 {
		errs = append(errs, fmt.Errorf("topN must not be negative: %d", c.TopN))
	}
	if _, err := c.Schema(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Schema returns the default schema with the column overrides applied.
func (c *Config) Schema() (cvm.Schema, error) {
	s := cvm.DefaultSchema()
	var err error
	if s.Positions, err = s.Positions.Override(c.Columns.Positions); err != nil {
		return s, err
	}
	if s.Funds, err = s.Funds.Override(c.Columns.Funds); err != nil {
		return s, err
	}
	if s.Managers, err = s.Managers.Override(c.Columns.Managers); err != nil {
		return s, err
	}
	return s, nil
}

// ReadOptions returns the options to read the CVM files with.
func (c *Config) ReadOptions() (cvm.Options, error) {
	enc, err := cvm.ParseEncoding(c.Encoding)
	if err != nil {
		return cvm.Options{}, err
	}
	return cvm.Options{Encoding: enc}, nil
}

// Pipeline returns the pipeline these settings describe.
func (c *Config) Pipeline(log logrus.FieldLogger) (offshore.Pipeline, error) {
	role, err := offshore.ParseRole(c.Role)
	if err != nil {
		return offshore.Pipeline{}, err
	}
	return offshore.Pipeline{
		Currency:        c.Currency,
		InvestmentTypes: c.InvestmentTypes,
		Role:            role,
		MinMatchRate:    c.MinMatchRate,
		Placeholder:     c.Placeholder,
		Log:             log,
	}, nil
}
