package jsv

import (
	"fmt"
)

const (
	// DefaultCapacity is the default arena size in units.
	DefaultCapacity = 2048
	// DefaultFragmentSize is the default number of string bytes held by one
	// arena unit.
	DefaultFragmentSize = 12

	maxCapacity = 1 << 24
)

// Config represents the store configuration file structure.
type Config struct {
	// Store configures the node arena.
	Store *StoreConfig `yaml:"store" json:"store"`
}

// StoreConfig configures the node arena.
type StoreConfig struct {
	// Capacity is the number of arena units available. Every node takes at
	// least one unit; strings take one unit per FragmentSize bytes.
	Capacity int `yaml:"capacity" json:"capacity"`

	// FragmentSize is the number of string bytes accounted to one unit.
	FragmentSize int `yaml:"fragmentSize" json:"fragmentSize"`

	// StrictLocks makes unbalanced Unlock calls panic instead of being
	// logged.
	StrictLocks bool `yaml:"strictLocks" json:"strictLocks"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Store: &StoreConfig{
			Capacity:     DefaultCapacity,
			FragmentSize: DefaultFragmentSize,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Store == nil {
		return nil
	}
	if c.Store.Capacity <= 0 || c.Store.Capacity > maxCapacity {
		return fmt.Errorf("store capacity %d out of range (1..%d)", c.Store.Capacity, maxCapacity)
	}
	if c.Store.FragmentSize <= 0 {
		return fmt.Errorf("store fragment size %d must be positive", c.Store.FragmentSize)
	}
	return nil
}

// storeConfig returns the store section with defaults filled in.
func (c *Config) storeConfig() StoreConfig {
	res := *DefaultConfig().Store
	if c == nil || c.Store == nil {
		return res
	}
	if c.Store.Capacity != 0 {
		res.Capacity = c.Store.Capacity
	}
	if c.Store.FragmentSize != 0 {
		res.FragmentSize = c.Store.FragmentSize
	}
	res.StrictLocks = c.Store.StrictLocks
	return res
}
