package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/syssam/zerobuf/compiler/gen"
)

// DefaultConfigFile is read from the working directory when no --config
// flag is given and the file exists.
const DefaultConfigFile = "zerobufc.yaml"

// options holds the settings of one run. The config file uses the long
// flag names as keys; flags given on the command line take precedence.
type options struct {
	OutputDir string   `yaml:"outputdir"`
	Extension string   `yaml:"extension"`
	QObject   bool     `yaml:"qobject"`
	Package   string   `yaml:"package"`
	Header    string   `yaml:"header"`
	Features  []string `yaml:"features"`
	Workers   int      `yaml:"workers"`
	Dump      string   `yaml:"dump"`
	Verbose   bool     `yaml:"verbose"`
	Inputs    []string `yaml:"inputs"`
}

// readConfig decodes the config file at path. Unknown keys are errors.
func readConfig(path string) (*options, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, gen.NewConfigError("config", path, err.Error())
	}
	defer f.Close()
	return decodeConfig(path, f)
}

func decodeConfig(name string, r io.Reader) (*options, error) {
	o := &options{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(o); err != nil && !errors.Is(err, io.EOF) {
		return nil, gen.NewConfigError("config", name, err.Error())
	}
	return o, nil
}

// merge overrides the settings of o with the non-zero settings of flags.
func (o *options) merge(flags *options) {
	if flags.OutputDir != "" {
		o.OutputDir = flags.OutputDir
	}
	if flags.Extension != "" {
		o.Extension = flags.Extension
	}
	if flags.Package != "" {
		o.Package = flags.Package
	}
	if flags.Header != "" {
		o.Header = flags.Header
	}
	if flags.Workers > 0 {
		o.Workers = flags.Workers
	}
	if flags.Dump != "" {
		o.Dump = flags.Dump
	}
	if len(flags.Inputs) > 0 {
		o.Inputs = flags.Inputs
	}
	o.QObject = o.QObject || flags.QObject
	o.Verbose = o.Verbose || flags.Verbose
	o.Features = append(o.Features, flags.Features...)
}

// genOptions translates o into code generation options.
func (o *options) genOptions(logger *slog.Logger) []gen.Option {
	opts := []gen.Option{gen.WithLogger(logger)}
	if o.OutputDir != "" {
		opts = append(opts, gen.WithTarget(o.OutputDir))
	}
	if o.Extension != "" {
		opts = append(opts, gen.WithExtension(o.Extension))
	}
	if o.Package != "" {
		opts = append(opts, gen.WithPackage(o.Package))
	}
	if o.Header != "" {
		opts = append(opts, gen.WithHeader(o.Header))
	}
	if o.Workers > 0 {
		opts = append(opts, gen.WithWorkers(o.Workers))
	}
	if o.QObject {
		opts = append(opts, gen.WithFeatures(gen.FeatureSignals))
	}
	if len(o.Features) > 0 {
		opts = append(opts, gen.WithFeatureNames(o.Features...))
	}
	return opts
}

// newLogger returns the text logger of the CLI.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
