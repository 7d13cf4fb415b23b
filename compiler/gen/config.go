package gen

import (
	"io"
	"log/slog"
	"os"
	"runtime"
)

// Stdout is the Target that makes the generator print files to
// Config.Output instead of writing them.
const Stdout = "-"

// DefaultExtension is the extension of generated source files.
const DefaultExtension = "go"

// InlineExtension is the reserved extension that selects inline mode: the
// implementation is rendered into the same file as the declarations.
const InlineExtension = "ipp"

// Config holds the global codegen configuration shared by all schema files
// of one run.
type Config struct {
	// Target is the output directory. Empty means alongside each input
	// file, Stdout prints everything to Output.
	Target string

	// Package is the name of the generated Go package. Empty means the last
	// namespace segment of each schema, or the base name of its directory.
	Package string

	// Header allows users to provide an optional header signature for
	// the generated files.
	Header string

	// Extension of generated implementation files. InlineExtension renders
	// declarations and implementation into one file.
	Extension string

	// Features defines a list of additional features to add to the codegen phase.
	// For example, the signals feature.
	Features []Feature

	// Logger receives progress and diagnostics. Defaults to slog.Default().
	Logger *slog.Logger

	// Workers limits the number of files written in parallel.
	Workers int

	// Backend renders the model into source files.
	Backend Backend

	// Output receives the files when Target is Stdout. Defaults to os.Stdout.
	Output io.Writer
}

// defaults fills in the zero fields.
func (c *Config) defaults() {
	if c.Extension == "" {
		c.Extension = DefaultExtension
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Output == nil {
		c.Output = os.Stdout
	}
}

// Inline reports whether the implementation is rendered into the
// declaration file.
func (c *Config) Inline() bool {
	return c.Extension == InlineExtension
}

// FeatureEnabled reports if the given feature name is enabled.
// It's exported to be used by the template engine as follows:
//
//	{{ with $.FeatureEnabled "signals" }}
//		...
//	{{ end }}
func (c *Config) FeatureEnabled(name string) (bool, error) {
	for _, f := range AllFeatures {
		if name == f.Name {
			for i := range c.Features {
				if name == c.Features[i].Name {
					return true, nil
				}
			}
			return f.Default, nil
		}
	}
	return false, NewConfigError("Features", name, "unexpected feature name")
}

func (c *Config) featureEnabled(f Feature) bool {
	enabled, _ := c.FeatureEnabled(f.Name)
	return enabled
}
