package gen

import (
	"errors"
	"io"
	"log/slog"
	"strings"
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

// WithPackage sets the name of the generated Go package.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		if strings.ContainsAny(pkg, "/. -") {
			return NewConfigError("Package", pkg, "package must be a plain identifier")
		}
		c.Package = pkg
		return nil
	}
}

// WithTarget sets the output directory.
// Stdout ("-") prints the generated files instead of writing them.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithExtension sets the extension of generated implementation files.
// InlineExtension selects inline mode.
func WithExtension(ext string) Option {
	return func(c *Config) error {
		ext = strings.TrimPrefix(ext, ".")
		if ext == "" {
			return NewConfigError("Extension", nil, "extension cannot be empty")
		}
		if strings.ContainsAny(ext, `/\`) {
			return NewConfigError("Extension", ext, "extension cannot contain path separators")
		}
		c.Extension = ext
		return nil
	}
}

// WithFeatures enables specific features.
// Features control optional code generation capabilities.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		c.Features = append(c.Features, features...)
		return nil
	}
}

// WithFeatureNames enables features by name, as given on the command line.
func WithFeatureNames(names ...string) Option {
	return func(c *Config) error {
		var errs []error
		for _, name := range names {
			f, ok := FeatureByName(name)
			if !ok {
				errs = append(errs, NewConfigError("Features", name, "unknown feature"))
				continue
			}
			c.Features = append(c.Features, f)
		}
		return errors.Join(errs...)
	}
}

// WithLogger sets the logger of the generator.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
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

// WithBackend sets the backend rendering the generated files.
func WithBackend(b Backend) Option {
	return func(c *Config) error {
		if b == nil {
			return NewConfigError("Backend", nil, "backend cannot be nil")
		}
		c.Backend = b
		return nil
	}
}

// WithOutput sets the writer receiving the files when the target is Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *Config) error {
		if w == nil {
			return NewConfigError("Output", nil, "output cannot be nil")
		}
		c.Output = w
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
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	c.defaults()
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
