// Command shady-css parses stylesheets and prints them back as minified CSS
// or as a syntax tree, or serves the language server on stdio.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"bennypowers.dev/shadycss/internal/config"
	"bennypowers.dev/shadycss/internal/log"
	"bennypowers.dev/shadycss/internal/version"
	"bennypowers.dev/shadycss/lsp"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	format      string
	applyMixins bool
	configPath  string
	serve       bool
	logLevel    string
	version     bool
}

func parseFlags(args []string, stderr io.Writer) (options, []string, error) {
	var opts options
	fs := flag.NewFlagSet("shady-css", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.format, "format", "", "Output format: css, yaml or json")
	fs.BoolVar(&opts.applyMixins, "apply", false, "Desugar custom property mixins and @apply")
	fs.StringVar(&opts.configPath, "config", "", "Config file (default: discovered in the working directory)")
	fs.BoolVar(&opts.serve, "lsp", false, "Serve the language server on stdio")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	fs.BoolVar(&opts.version, "version", false, "Print the version and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: shady-css [flags] [file|glob|-]...\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, nil, err
	}
	return opts, fs.Args(), nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, inputs, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.version {
		fmt.Fprintf(stdout, "shady-css %s\n", version.GetFullVersion())
		return 0
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	log.SetLevel(cfg.Level())

	if opts.serve {
		return serve(opts, cfg)
	}

	files, err := expand(inputs, cfg)
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	status, written := 0, 0
	for _, file := range files {
		src, err := read(file, stdin)
		if err != nil {
			log.Error("%v", err)
			status = 1
			continue
		}
		out, err := render(src, cfg)
		if err != nil {
			log.Error("%s: %v", file, err)
			status = 1
			continue
		}
		if cfg.Format == config.FormatYAML && len(files) > 1 {
			fmt.Fprintf(stdout, "--- # %s\n", file)
		} else if cfg.Format == config.FormatCSS && written > 0 {
			fmt.Fprintln(stdout)
		}
		if _, err := io.WriteString(stdout, out); err != nil {
			log.Error("failed to write output: %v", err)
			return 1
		}
		written++
	}
	return status
}

// loadConfig reads the config file and applies flags over it.
func loadConfig(opts options) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		var dir, path string
		if dir, err = os.Getwd(); err != nil {
			return cfg, fmt.Errorf("failed to get working directory: %w", err)
		}
		cfg, path, err = config.LoadDir(dir)
		if path != "" {
			log.Debug("Using config %s", path)
		}
	}
	if err != nil {
		return cfg, err
	}

	if opts.format != "" {
		cfg.Format = opts.format
	}
	if opts.applyMixins {
		cfg.ApplyMixins = true
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func serve(opts options, cfg config.Config) int {
	// glsp logs through commonlog; stdout belongs to the protocol
	commonlog.Configure(verbosity(cfg.Level()), nil)

	server := newServer(opts, cfg)
	if err := server.RunStdio(); err != nil {
		log.Error("Server error: %v", err)
		return 1
	}
	return 0
}

// newServer starts the language server from the resolved CLI config. An
// explicit -log-level stays in force over workspace files and client settings.
func newServer(opts options, cfg config.Config) *lsp.Server {
	serverOpts := []lsp.Option{lsp.WithBaseConfig(cfg)}
	if opts.logLevel != "" {
		serverOpts = append(serverOpts, lsp.WithLogLevel(opts.logLevel))
	}
	return lsp.NewServer(serverOpts...)
}

func verbosity(level log.Level) int {
	switch level {
	case log.LevelDebug:
		return 2
	case log.LevelInfo:
		return 1
	default:
		return 0
	}
}
