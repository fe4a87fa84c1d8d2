// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"io"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config is the root-level settings struct and is a mix of settings
// available in a settings file and those available from the command line
type Config struct {
	// number of worker goroutines
	Threads int `mapstructure:"threads" toml:"threads"`

	// minimum overlap length between two reads
	MinOverlap int `mapstructure:"min-overlap" toml:"min-overlap"`

	// expected per-base error rate of the reads
	ErrorRate float64 `mapstructure:"error-rate" toml:"error-rate"`

	// output file, "-" for stdout. Empty writes to the prefix plus the command's suffix
	Out string `mapstructure:"out" toml:"out"`

	// prefix of the output files, defaults to the reads file's name
	Prefix string `mapstructure:"prefix" toml:"prefix"`

	// log diagnostics
	Verbose bool `mapstructure:"verbose" toml:"verbose"`

	// only log errors, no progress bar
	Quiet bool `mapstructure:"quiet" toml:"quiet"`

	// abort on the first query with inconsistent blocks instead of skipping it
	Strict bool `mapstructure:"strict" toml:"strict"`

	// leave containment edges out of the overlap output
	ExcludeContainments bool `mapstructure:"no-contained" toml:"no-contained"`

	// overlap output format: asqg or tsv
	Format string `mapstructure:"format" toml:"format"`
}

// Formats are the overlap output formats
var Formats = []string{"asqg", "tsv"}

// Defaults returns the settings used when neither a settings file nor a
// flag sets them
func Defaults() Config {
	return Config{
		Threads:    runtime.NumCPU(),
		MinOverlap: 45,
		ErrorRate:  0.04,
		Format:     "asqg",
	}
}

// SetDefaults registers the defaults with v
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("threads", d.Threads)
	v.SetDefault("min-overlap", d.MinOverlap)
	v.SetDefault("error-rate", d.ErrorRate)
	v.SetDefault("out", d.Out)
	v.SetDefault("prefix", d.Prefix)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("quiet", d.Quiet)
	v.SetDefault("strict", d.Strict)
	v.SetDefault("no-contained", d.ExcludeContainments)
	v.SetDefault("format", d.Format)
}

// New returns a new Config populated by the global Viper's settings
// (a settings file and/or command line arguments)
func New() (*Config, error) {
	return Load(viper.GetViper())
}

// Load a Config from v. If v has a "settings" path, that file is read in
// first and flags override it
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	if settings := v.GetString("settings"); settings != "" {
		v.SetConfigFile(settings)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read settings file %s", settings)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "unable to decode settings")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the settings are in range
func (c *Config) Validate() error {
	if c.Threads < 1 {
		return errors.Errorf("threads must be at least 1, got %d", c.Threads)
	}
	if c.MinOverlap < 0 {
		return errors.Errorf("min-overlap must not be negative, got %d", c.MinOverlap)
	}
	if c.ErrorRate < 0 || c.ErrorRate >= 1 {
		return errors.Errorf("error-rate must be in [0, 1), got %v", c.ErrorRate)
	}
	for _, f := range Formats {
		if c.Format == f {
			return nil
		}
	}
	return errors.Errorf("unknown format %q, expected one of %v", c.Format, Formats)
}

// WriteTOML writes the settings as a TOML settings file
func (c Config) WriteTOML(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return errors.Wrap(err, "failed to write settings")
	}
	return nil
}
