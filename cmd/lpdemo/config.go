package main

import (
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"lptable/hashfn"
)

const (
	hasherModulo = "modulo"
	hasherXXHash = "xxhash"
	hasherFNV    = "fnv"
)

// Config is a workload replayed against a single table.
type Config struct {
	Capacity uint64       `toml:"capacity"`
	Hasher   string       `toml:"hasher"`
	Inserts  []InsertStep `toml:"insert"`
	Lookups  []string     `toml:"lookup"`
}

type InsertStep struct {
	Key   string `toml:"key"`
	Value string `toml:"value"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrapf(err, "decode workload %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid workload %s", path)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Hasher == "" {
		c.Hasher = hasherXXHash
	}
	switch c.Hasher {
	case hasherXXHash, hasherFNV:
		return nil
	case hasherModulo:
	default:
		return errors.Errorf("unknown hasher %q", c.Hasher)
	}
	for _, step := range c.Inserts {
		if _, err := strconv.ParseUint(step.Key, 10, 64); err != nil {
			return errors.Wrapf(err, "modulo hasher needs unsigned integer keys")
		}
	}
	for _, k := range c.Lookups {
		if _, err := strconv.ParseUint(k, 10, 64); err != nil {
			return errors.Wrapf(err, "modulo hasher needs unsigned integer keys")
		}
	}
	return nil
}

// HashFunc returns the configured hash function. The config must have been
// validated.
func (c *Config) HashFunc() func(string) uint64 {
	switch c.Hasher {
	case hasherModulo:
		mod := hashfn.Modulo[uint64](c.Capacity)
		return func(k string) uint64 {
			n, _ := strconv.ParseUint(k, 10, 64)
			return mod(n)
		}
	case hasherFNV:
		return hashfn.FNV(c.Capacity)
	default:
		return hashfn.String(c.Capacity)
	}
}
