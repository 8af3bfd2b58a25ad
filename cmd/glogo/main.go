package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"glogo/internal/errs"
	"glogo/internal/evaluator"
	"glogo/internal/parser"
	"glogo/internal/repl"
	"glogo/internal/util"
)

var (
	// Version is stamped at build time.
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"

	help     bool
	version  bool
	replMode bool
	// logging
	logLevel string
	logFile  string
	// run config
	configPath string
	width      int
	height     int
)

func init() {
	flag.BoolVar(&help, "help", false, "Display help information and exit")
	flag.BoolVar(&help, "h", false, "Display help information and exit")
	flag.BoolVar(&version, "version", false, "Display version information and exit")
	flag.BoolVar(&version, "v", false, "Display version information and exit")
	flag.BoolVar(&replMode, "repl", false, "Start an interactive session instead of running a file")
	// run config
	flag.StringVar(&configPath, "config", "", "Path to a TOML config file (default: glogo.toml if present)")
	flag.IntVar(&width, "width", 0, "Canvas width in pixels (overrides config)")
	flag.IntVar(&height, "height", 0, "Canvas height in pixels (overrides config)")
	// log config
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.StringVar(&logFile, "log-file", "", "Log file path (if not set, logs to stderr)")
}

func main() {

	flag.Parse()

	cfg, err := util.LoadConfiguration(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	cfg.Version = Version
	cfg.BuildDate = BuildDate
	cfg.Commit = Commit

	// explicit flags win over config values
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = width
		case "height":
			cfg.Height = height
		case "log-level":
			cfg.LogLevel = logLevel
		case "log-file":
			cfg.LogFile = logFile
		}
	})

	loggerOptions := &slog.HandlerOptions{
		AddSource: false,
		Level:     logLevelFromString(cfg.LogLevel),
	}
	defaultLogger := slog.New(slog.NewJSONHandler(configureLogWriter(cfg.LogFile), loggerOptions))
	slog.SetDefault(defaultLogger)

	if version {
		printVersion()
		return
	}

	if help {
		printHelp()
		return
	}

	if replMode {
		if err := repl.Start(cfg.Width, cfg.Height); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if flag.NArg() < 1 {
		printHelp()
		os.Exit(2)
	}
	input := flag.Arg(0)
	output := cfg.Output
	if flag.NArg() > 1 {
		output = flag.Arg(1)
	}

	if err := run(input, output, cfg); err != nil {
		reportError(err)
		os.Exit(1)
	}
	fmt.Println("Program executed successfully.")
}

func run(input, output string, cfg util.Configuration) error {
	source, err := os.ReadFile(input)
	if err != nil {
		return &errs.IOError{Op: "read", Path: input, Err: err}
	}

	program, err := parser.Parse(string(source))
	if err != nil {
		return err
	}

	interp := evaluator.New(cfg.Width, cfg.Height)
	if err := interp.Execute(program); err != nil {
		return err
	}

	return interp.SaveImage(output)
}

func configureLogWriter(logFile string) *os.File {
	if logFile == "" {
		return os.Stderr
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory for '%s': %v; falling back to stderr\n", logFile, err)
		return os.Stderr
	}
	logWriter, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file '%s': %v; falling back to stderr\n", logFile, err)
		return os.Stderr
	}
	return logWriter
}

func logLevelFromString(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelError
	}
}

func printVersion() {

	fmt.Printf("glogo version 'v%s' %s %s\n", Version, BuildDate, Commit)
}

func printHelp() {
	fmt.Printf(`Usage: glogo [options] <input.lg> [output.svg|output.png]

Options:
  -width <px>        Canvas width in pixels. Default is 200 (or the config value).
  -height <px>       Canvas height in pixels. Default is 200 (or the config value).
  -config <path>     Load run defaults from a TOML file. Default is 'glogo.toml' if present.
  -repl              Start an interactive session instead of running a file.
  -help              Display this help information and exit.
  -version           Display version information and exit.
  -log-level <level> Set the log level: debug, info, warn, error. Default is 'error'.
  -log-file <path>   Specify a log file to write logs. Default is stderr.

Details:
glogo interprets a small Logo-family drawing language and writes the
resulting image as SVG or PNG, chosen by the output file extension.

Examples:
  glogo spiral.lg spiral.svg            Run a program and write an SVG
  glogo -width 400 -height 400 t.lg t.png
  glogo -repl                           Draw interactively

Version Information:
  Version:    %s
  Build Date: %s
  Commit:     %s
`, Version, BuildDate, Commit)
}
