// zerobufc compiles zerobuf schema files into Go types backed by the
// zerobuf runtime.
//
//	zerobufc [flags] file.fbs...
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/codegangsta/cli"

	"github.com/syssam/zerobuf/compiler"
	"github.com/syssam/zerobuf/compiler/gen"
)

var usage = `compile zerobuf schemas into Go

	For every schema file <base>.fbs, zerobufc writes <base>.go holding the
	enums and tables and <base>_impl.<ext> holding the member accessors and
	the JSON conversion. With the extension ipp both are written to <base>.go.

	Settings are read from --config, or from zerobufc.yaml in the working
	directory, using the long flag names as keys. Flags take precedence.`

// errNoInputs is returned when no schema file is given.
var errNoInputs = errors.New("no schema files given; usage: zerobufc [flags] file.fbs...")

func init() {
	// -v is taken by --verbose.
	cli.VersionFlag = cli.BoolFlag{Name: "version, V", Usage: "print the version"}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newApp(ctx, os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "zerobufc:", err)
		stop()
		os.Exit(1)
	}
}

// newApp returns the command line application. Generated files printed
// with --outputdir - and snapshots go to stdout, logs to stderr.
func newApp(ctx context.Context, stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "zerobufc"
	app.Usage = usage
	app.ArgsUsage = "file.fbs..."
	app.Version = "0.1.0"
	app.Writer = stdout
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "outputdir, o",
			Usage: "Output directory, '-' prints to stdout (default: alongside each input)",
		},
		cli.StringFlag{
			Name:  "extension, e",
			Usage: "Extension of implementation files, 'ipp' writes them inline (default: go)",
		},
		cli.BoolFlag{
			Name:  "qobject, q",
			Usage: "Generate a change signal per member",
		},
		cli.StringFlag{
			Name:  "package, p",
			Usage: "Name of the generated Go package (default: last namespace segment)",
		},
		cli.StringFlag{
			Name:  "header",
			Usage: "Comment added below the generated-code notice of every file",
		},
		cli.StringSliceFlag{
			Name:  "feature, f",
			Usage: "Enable a codegen feature: signals, jsonschema or registry",
		},
		cli.IntFlag{
			Name:  "workers",
			Usage: "Number of files processed in parallel (default: GOMAXPROCS)",
		},
		cli.StringFlag{
			Name:  "config",
			Usage: "YAML file with default settings",
		},
		cli.StringFlag{
			Name:  "dump",
			Usage: "Print the computed model as json, yaml or msgpack instead of generating code",
		},
		cli.BoolFlag{
			Name:  "watch, w",
			Usage: "Regenerate the schema files whenever they change",
		},
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "Log debug output",
		},
	}
	app.Action = func(c *cli.Context) error {
		return run(ctx, c, stdout, stderr)
	}
	return app
}

func run(ctx context.Context, c *cli.Context, stdout, stderr io.Writer) error {
	o, err := loadOptions(c)
	if err != nil {
		return err
	}
	if len(o.Inputs) == 0 {
		return errNoInputs
	}
	logger := newLogger(stderr, o.Verbose)
	opts := append(o.genOptions(logger), gen.WithOutput(stdout))

	if o.Dump != "" {
		return compiler.Dump(ctx, stdout, o.Dump, o.Inputs, opts...)
	}
	generate := func(ctx context.Context, paths []string) error {
		return compiler.Generate(ctx, paths, opts...)
	}
	err = generate(ctx, o.Inputs)
	if !c.Bool("watch") {
		return err
	}
	if err != nil {
		logger.Error("generating schemas", "error", err)
	}
	return watch(ctx, logger, o.Inputs, generate)
}

// loadOptions merges the config file with the flags.
func loadOptions(c *cli.Context) (*options, error) {
	o := &options{}
	path := c.String("config")
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	if path != "" {
		var err error
		if o, err = readConfig(path); err != nil {
			return nil, err
		}
	}
	o.merge(&options{
		OutputDir: c.String("outputdir"),
		Extension: c.String("extension"),
		QObject:   c.Bool("qobject"),
		Package:   c.String("package"),
		Header:    c.String("header"),
		Features:  c.StringSlice("feature"),
		Workers:   c.Int("workers"),
		Dump:      c.String("dump"),
		Verbose:   c.Bool("verbose"),
		Inputs:    []string(c.Args()),
	})
	return o, nil
}
