package gen

import (
	"runtime"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/syssam/vogen"
	"github.com/syssam/vogen/compiler/load"
)

// Config holds the global codegen configuration shared by all types.
type Config struct {
	// Target is the directory artifacts are written to.
	Target string

	// Package is the import path assumed for declarations that do not
	// declare one.
	Package string

	// Header is an optional header comment for generated files.
	// Defaults to "Code generated by vogen. DO NOT EDIT.".
	Header string

	// Workers bounds the number of candidates built and concerns emitted in
	// parallel. Defaults to GOMAXPROCS.
	Workers int

	// DirectiveName is the directive marking candidates. Defaults to "vogen".
	DirectiveName string

	// Features lists the emission concerns. Nil means the default set
	// (every concern whose Default is true).
	Features []Feature

	// Logger receives debug logs for cache hits and builds.
	Logger *zap.Logger

	// Store persists artifacts across sessions. Optional.
	Store vogen.Cache

	cacheOnce sync.Once
	cache     *Cache
}

// OutputConfig groups the output settings of a Config.
type OutputConfig struct {
	Target  string
	Package string
	Header  string
}

// Output returns the grouped output settings.
func (c *Config) Output() OutputConfig {
	return OutputConfig{
		Target:  c.Target,
		Package: c.Package,
		Header:  c.Header,
	}
}

// FeatureEnabled reports if the given concern name is enabled.
func (c *Config) FeatureEnabled(name string) (bool, error) {
	for _, f := range AllFeatures {
		if name != f.Name {
			continue
		}
		if c.Features == nil {
			return f.Default, nil
		}
		return slices.ContainsFunc(c.Features, func(e Feature) bool { return e.Name == name }), nil
	}
	return false, NewConfigError("Feature", name, "unknown concern")
}

// Cache returns the session cache of the config, creating it on first use.
// It is safe for concurrent use.
func (c *Config) Cache() *Cache {
	c.cacheOnce.Do(func() {
		if c.cache == nil {
			c.cache = NewCache(c.logger(), c.Store)
		}
	})
	return c.cache
}

func (c *Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c *Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (c *Config) directive() string {
	if c.DirectiveName == "" {
		return load.DefaultDirective
	}
	return c.DirectiveName
}

func (c *Config) header() string {
	if c.Header == "" {
		return "Code generated by vogen. DO NOT EDIT."
	}
	return c.Header
}
