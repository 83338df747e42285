// Package config defines the data structures related to configuration and
// includes functions for loading the config.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/iwvelando/mortgage-calculator/internal/report"
	"github.com/iwvelando/mortgage-calculator/pkg/amount"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for mortgage-calculator.
type Configuration struct {
	Defaults Defaults      `yaml:"defaults,omitempty"`
	Logging  LoggingConfig `yaml:"logging,omitempty"`
	Output   OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format  string `yaml:"format,omitempty"`  // pretty, csv
	CSVFile string `yaml:"csvFile,omitempty"` // optional CSV export path
}

// Defaults overrides the built-in input defaults. Amounts accept
// human-readable values such as "200K".
type Defaults struct {
	Rate    float64 `yaml:"rate,omitempty"`
	Term    int     `yaml:"term,omitempty"`
	Down    string  `yaml:"down,omitempty"`
	Closing string  `yaml:"closing,omitempty"`
	Realtor float64 `yaml:"realtor,omitempty"`
	HOA     string  `yaml:"hoa,omitempty"`
	APR     float64 `yaml:"apr,omitempty"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("defaults.rate", constants.DefaultMortgageRate)
	v.SetDefault("defaults.term", constants.DefaultLoanTermYears)
	v.SetDefault("defaults.down", "0")
	v.SetDefault("defaults.closing", "0")
	v.SetDefault("defaults.realtor", constants.DefaultRealtorPercent)
	v.SetDefault("defaults.hoa", "0")
	v.SetDefault("defaults.apr", constants.DefaultInvestmentAPR)
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", "")
	v.SetDefault("output.csvFile", "")
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

// Default returns the configuration used when no file is present, still
// honouring environment overrides.
func Default() (*Configuration, error) {
	return decode(newViper())
}

// LoadOptional loads configPath when it exists. A missing file is only an
// error when required is set.
func LoadOptional(configPath string, required bool) (*Configuration, error) {
	if _, err := os.Stat(configPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return Default()
		}
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return LoadConfiguration(configPath)
}

// Inputs converts the configured defaults into calculation inputs. The house
// price is left at zero since it has no default.
func (d Defaults) Inputs() (report.Inputs, error) {
	in := report.DefaultInputs()
	in.MortgageRatePercent = d.Rate
	in.LoanTermYears = d.Term
	in.RealtorPercent = d.Realtor
	in.InvestmentAPRPercent = d.APR

	amounts := []struct {
		name   string
		raw    string
		target *float64
	}{
		{"down", d.Down, &in.DownPayment},
		{"closing", d.Closing, &in.ClosingCosts},
		{"hoa", d.HOA, &in.MonthlyHOA},
	}
	for _, a := range amounts {
		if strings.TrimSpace(a.raw) == "" {
			continue
		}
		parsed, err := amount.Parse(a.raw)
		if err != nil {
			return in, fmt.Errorf("defaults.%s: %w", a.name, err)
		}
		*a.target = parsed
	}

	return in, nil
}
