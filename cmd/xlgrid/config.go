package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// config holds flag defaults loaded with --config. Flag defaults live in one
// section per command, since commands accept different values for the same
// flag name. Unset keys leave the flag defaults alone.
//
//	verbose: true
//	read:
//	  sheet: Sales
//	  format: csv
//	sheets:
//	  format: json
type config struct {
	Verbose *bool         `yaml:"verbose"`
	Read    commandConfig `yaml:"read"`
	Write   commandConfig `yaml:"write"`
	Sheets  commandConfig `yaml:"sheets"`
}

type commandConfig struct {
	Sheet  *string `yaml:"sheet"`
	Format *string `yaml:"format"`
	Pretty *bool   `yaml:"pretty"`
	Verify *bool   `yaml:"verify"`
}

func loadConfig(path string) (config, error) {
	var cfg config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// values returns the keys configured for the named command as flag values.
func (c config) values(command string) map[string]string {
	v := make(map[string]string)
	if c.Verbose != nil {
		v["verbose"] = strconv.FormatBool(*c.Verbose)
	}

	var cc commandConfig
	switch command {
	case "read":
		cc = c.Read
	case "write":
		cc = c.Write
	case "sheets":
		cc = c.Sheets
	}
	if cc.Sheet != nil {
		v["sheet"] = *cc.Sheet
	}
	if cc.Format != nil {
		v["format"] = *cc.Format
	}
	if cc.Pretty != nil {
		v["pretty"] = strconv.FormatBool(*cc.Pretty)
	}
	if cc.Verify != nil {
		v["verify"] = strconv.FormatBool(*cc.Verify)
	}
	return v
}

// applyConfig sets every value whose flag the command defines and the
// command line did not set.
func applyConfig(flags *pflag.FlagSet, values map[string]string) error {
	for name, value := range values {
		f := flags.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("config key %s: %w", name, err)
		}
	}
	return nil
}
