package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/bodgit/oplogo"
	"github.com/bodgit/oplogo/plmn"
	"gopkg.in/yaml.v3"
)

const (
	defaultDB      = "oplogo.db"
	defaultWorkers = 4
)

// config holds defaults read from an optional YAML file, for example:
//
//	db: /var/lib/oplogo/logos.db
//	network:
//	  mcc: 244
//	  mnc: 5
//	workers: 8
type config struct {
	DB      string `yaml:"db"`
	Network struct {
		MCC *int `yaml:"mcc"`
		MNC *int `yaml:"mnc"`
	} `yaml:"network"`
	Workers int `yaml:"workers"`
}

func loadConfig(file string) (*config, error) {
	c := new(config)

	if file != "" {
		b, err := ioutil.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return c, nil
}

func (c *config) validate() error {
	if c.DB == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		c.DB = filepath.Join(cwd, defaultDB)
	}

	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}

	if id := c.network(); !id.Valid() {
		return fmt.Errorf("network %d-%d out of range", id.MCC, id.MNC)
	}

	return nil
}

func (c *config) network() plmn.ID {
	id := plmn.ID{MCC: oplogo.DefaultMCC, MNC: oplogo.DefaultMNC}
	if c.Network.MCC != nil {
		id.MCC = *c.Network.MCC
	}
	if c.Network.MNC != nil {
		id.MNC = *c.Network.MNC
	}
	return id
}
