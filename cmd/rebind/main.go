// Package main is the entry point for the rebind input viewer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/rebind/internal/app"
	"github.com/dshills/rebind/internal/config"
	"github.com/dshills/rebind/internal/input/control"
	"github.com/dshills/rebind/internal/input/device"
	"github.com/dshills/rebind/internal/input/device/ebitendev"
	"github.com/dshills/rebind/internal/input/device/termdev"
	"github.com/dshills/rebind/internal/input/profile"
	"github.com/dshills/rebind/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	bindings  string
	backend   string
	platform  string
	script    string
	logLevel  string
	logFormat string
	logFile   string
	export    string
	profile   string
	bind      string
	check     bool
	init      bool
	noWatch   bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, code, done := parseFlags(os.Args[1:])
	if done {
		return code
	}

	logOut, closeLog, err := logOutput(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()
	logger := logging.Init(logging.Config{Level: opts.logLevel, Format: opts.logFormat, Output: logOut})

	if opts.bind != "" {
		if err := setBinding(opts.bindings, opts.profile, opts.bind); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	file, err := app.LoadBindings(opts.bindings, opts.init)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	layout, ok := control.ParseLayout(file.Layout)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown gamepad layout %q\n", file.Layout)
		return 1
	}

	if opts.check {
		if err := check(os.Stdout, file, layout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	platform, err := choosePlatform(opts.platform, opts.backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	appOpts := app.Options{
		BindingsPath: opts.bindings,
		Platform:     platform,
		ScriptPath:   opts.script,
		Watch:        !opts.noWatch,
		Logger:       logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch opts.backend {
	case "ebiten":
		dev := ebitendev.New(ebitendev.WithLayout(layout))
		a, err := app.New(appOpts, file, dev)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer a.Shutdown()
		err = runEbiten(ctx, a, dev)
		return finish(a, opts.export, err)
	default:
		dev, err := termdev.Open(termdev.WithLayout(layout))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open terminal: %v\n", err)
			return 1
		}
		a, err := app.New(appOpts, file, dev)
		if err != nil {
			dev.Close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer a.Shutdown()
		err = app.RunTerminal(ctx, a, dev)
		return finish(a, opts.export, err)
	}
}

func finish(a *app.Application, export string, err error) int {
	if err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if export != "" {
		if err := a.Export(export); err != nil {
			fmt.Fprintf(os.Stderr, "Error: export: %v\n", err)
			return 1
		}
	}
	return 0
}

func parseFlags(args []string) (opts options, code int, done bool) {
	defaults, err := loadEnvDefaults()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return opts, 1, true
	}

	fs := flag.NewFlagSet("rebind", flag.ContinueOnError)
	var showVersion bool

	fs.StringVar(&opts.bindings, "bindings", defaults.Bindings, "Bindings file (.toml, .yaml or .json) [REBIND_BINDINGS]")
	fs.StringVar(&opts.bindings, "b", defaults.Bindings, "Bindings file (shorthand)")
	fs.StringVar(&opts.backend, "backend", defaults.Backend, "Input backend (terminal, ebiten) [REBIND_BACKEND]")
	fs.StringVar(&opts.platform, "platform", defaults.Platform, "Profile platform (desktop, gamepad, terminal, ...) [REBIND_PLATFORM]")
	fs.StringVar(&opts.script, "script", defaults.Script, "Lua script run every frame [REBIND_SCRIPT]")
	fs.StringVar(&opts.logLevel, "log-level", defaults.LogLevel, "Log level (debug, info, warn, error) [REBIND_LOG_LEVEL]")
	fs.StringVar(&opts.logFormat, "log-format", defaults.LogFormat, "Log format (console, text, json) [REBIND_LOG_FORMAT]")
	fs.StringVar(&opts.logFile, "log-file", defaults.LogFile, "Write logs to a file [REBIND_LOG_FILE]")
	fs.StringVar(&opts.export, "export", "", "Write the live bindings to a file on exit")
	fs.StringVar(&opts.profile, "profile", "", "Profile edited by -bind")
	fs.StringVar(&opts.bind, "bind", "", "Set one source and exit: Label.field=Control")
	fs.BoolVar(&opts.check, "check", false, "Validate the bindings and print them")
	fs.BoolVar(&opts.init, "init", false, "Write default bindings if the file does not exist")
	fs.BoolVar(&opts.noWatch, "no-watch", defaults.NoWatch, "Disable hot reload [REBIND_NO_WATCH]")
	fs.BoolVar(&showVersion, "version", false, "Show version information")

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "rebind - rebindable input viewer\n\n")
		fmt.Fprintf(out, "Usage: rebind [options]\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  rebind -init                          Create bindings.toml and view it\n")
		fmt.Fprintf(out, "  rebind -backend ebiten -script a.lua  Open a window and run a script\n")
		fmt.Fprintf(out, "  rebind -check -b pad.yaml             Validate a bindings file\n")
		fmt.Fprintf(out, "  rebind -profile keyboard -bind Jump.primary=K\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, 0, true
		}
		return opts, 2, true
	}

	if showVersion {
		fmt.Printf("rebind %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return opts, 0, true
	}

	if _, ok := logging.LookupLevel(opts.logLevel); !ok {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		return opts, 1, true
	}
	switch opts.backend {
	case "terminal", "ebiten":
	default:
		fmt.Fprintf(os.Stderr, "Error: %v: %q\n", app.ErrUnknownBackend, opts.backend)
		return opts, 1, true
	}
	return opts, 0, false
}

// logOutput picks the log destination. The terminal backend owns the
// screen, so its logs are dropped unless -log-file is given.
func logOutput(opts options) (io.Writer, func(), error) {
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return f, func() { f.Close() }, nil
	}
	if opts.backend == "terminal" && !opts.check && opts.bind == "" {
		return io.Discard, func() {}, nil
	}
	return os.Stderr, func() {}, nil
}

func choosePlatform(name, backend string) (profile.Platform, error) {
	if name == "" {
		if backend == "ebiten" {
			return profile.PlatformDesktop, nil
		}
		return profile.PlatformTerminal, nil
	}
	p, ok := profile.ParsePlatform(name)
	if !ok {
		return profile.PlatformAny, fmt.Errorf("%q: %w", name, config.ErrUnknownPlatform)
	}
	return p, nil
}

// check builds every profile against an idle device and prints it.
func check(w io.Writer, file *config.File, layout control.Layout) error {
	if err := config.Validate(file); err != nil {
		return err
	}
	dev := device.NewState(device.WithLayout(layout))
	set, err := config.Build(file, dev, config.BuildOptions{})
	if err != nil {
		return err
	}
	for _, pp := range set.Profiles() {
		fmt.Fprintf(w, "%s (%s): %d actions\n", pp.Name, pp.Platform(), pp.Len())
		for _, act := range pp.Actions() {
			fmt.Fprintf(w, "  %s\n", describe(act))
		}
	}
	return nil
}
