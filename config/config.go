// Package config contains the code to load the optional devutils configuration file
package config

import (
	"io/ioutil"
	"os"

	"github.com/imdario/mergo"
	"github.com/modil-io/devutils/merge"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type (
	// Config holds the settings that can be given in the configuration file. Settings given on the
	// command line take precedence over the ones in the file.
	Config struct {
		Merge    MergeConfig `yaml:"merge"`
		RenderAs string      `yaml:"render"`
		LogLevel string      `yaml:"loglevel"`
	}

	// MergeConfig selects the merge options either by strategy name, by explicit flags, or both. The
	// explicit flags are added to the options of the strategy.
	MergeConfig struct {
		Strategy          string `yaml:"strategy"`
		Recursive         bool   `yaml:"recursive"`
		NotOverride       bool   `yaml:"notOverride"`
		IgnoreNull        bool   `yaml:"ignoreNull"`
		ExtendObjectArray bool   `yaml:"extendObjectArray"`
	}
)

// Default returns the configuration that is used when no configuration file exists
func Default() *Config {
	return &Config{LogLevel: `error`}
}

// Load reads the configuration file at the given path. The default configuration is returned if the
// file does not exist. Settings that are absent in the file are taken from the default configuration.
func Load(path string) (*Config, error) {
	content, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrapf(err, `unable to read config file '%s'`, path)
	}
	cfg := &Config{}
	if err = yaml.Unmarshal(content, cfg); err != nil {
		return nil, errors.Wrapf(err, `unable to parse config file '%s'`, path)
	}
	if err = Apply(cfg, Default()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply assigns all settings that are unset in cfg from the settings in from. Boolean settings can
// only be turned on this way.
func Apply(cfg, from *Config) error {
	return errors.Wrap(mergo.Merge(cfg, from), `unable to apply configuration`)
}

// Options returns the merge options that this configuration selects
func (mc *MergeConfig) Options() (merge.Options, error) {
	opts := merge.Options{}
	if mc.Strategy != `` {
		var err error
		if opts, err = merge.GetStrategy(mc.Strategy); err != nil {
			return opts, err
		}
	}
	opts.Recursive = opts.Recursive || mc.Recursive
	opts.NotOverride = opts.NotOverride || mc.NotOverride
	opts.IgnoreNull = opts.IgnoreNull || mc.IgnoreNull
	opts.ExtendObjectArray = opts.ExtendObjectArray || mc.ExtendObjectArray
	return opts, nil
}
