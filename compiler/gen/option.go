package gen

import (
	"go/token"
	"slices"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/syssam/vogen"
)

// Option configures code generation.
type Option func(*Config) error

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithPackage sets the import path assumed for declarations without one.
// For example: "github.com/org/project/domain".
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithTarget sets the output directory.
// The directory where generated code will be written.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithWorkers sets the number of parallel workers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithDirectiveName sets the directive name marking candidates.
func WithDirectiveName(name string) Option {
	return func(c *Config) error {
		if !token.IsIdentifier(name) {
			return NewConfigError("DirectiveName", name, "directive name must be an identifier")
		}
		c.DirectiveName = name
		return nil
	}
}

// WithLogger sets the logger of the pipeline.
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithStore sets the store artifacts are persisted to across sessions.
func WithStore(s vogen.Cache) Option {
	return func(c *Config) error {
		if s == nil {
			return NewConfigError("Store", nil, "store cannot be nil")
		}
		c.Store = s
		return nil
	}
}

// WithCache shares a session cache between configs. Runs of configs
// sharing a cache reuse each other's models and artifacts.
func WithCache(cache *Cache) Option {
	return func(c *Config) error {
		if cache == nil {
			return NewConfigError("Cache", nil, "cache cannot be nil")
		}
		c.cache = cache
		return nil
	}
}

// WithFeatures enables specific concerns, on top of the default set.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		if c.Features == nil {
			c.Features = defaultFeatures()
		}
		for _, f := range features {
			if _, ok := featureByName(f.Name); !ok {
				return NewConfigError("Feature", f.Name, "unknown concern")
			}
			if !slices.ContainsFunc(c.Features, func(e Feature) bool { return e.Name == f.Name }) {
				c.Features = append(c.Features, f)
			}
		}
		return nil
	}
}

// WithoutFeatures disables concerns by name. The definition concern cannot
// be disabled, as every other concern extends it.
func WithoutFeatures(names ...string) Option {
	return func(c *Config) error {
		if c.Features == nil {
			c.Features = defaultFeatures()
		}
		for _, name := range names {
			if _, ok := featureByName(name); !ok {
				return NewConfigError("Feature", name, "unknown concern")
			}
			if name == FeatureDefinition.Name {
				return NewConfigError("Feature", name, "the definition concern cannot be disabled")
			}
			c.Features = slices.DeleteFunc(c.Features, func(e Feature) bool { return e.Name == name })
		}
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a multierror if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs *multierror.Error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
