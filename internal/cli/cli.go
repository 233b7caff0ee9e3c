// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command parsing and dispatch for shopfront.

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/jeranaias/shopfront-tui/internal/app"
	"github.com/jeranaias/shopfront-tui/internal/config"
	"github.com/jeranaias/shopfront-tui/internal/logging"
)

// Version information, overridden at build time with -ldflags.
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command is the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdLogout
	CmdSignup
	CmdStatus
	CmdLogs
	CmdAlerts
	CmdResolve
	CmdStats
	CmdBlock
	CmdReset
	CmdProducts
	CmdProduct
	CmdUsers
	CmdDashboard
	CmdServe
	CmdConfig
	CmdVersion
	CmdHelp
)

var commandNames = map[Command]string{
	CmdTUI:       "tui",
	CmdLogin:     "login",
	CmdLogout:    "logout",
	CmdSignup:    "signup",
	CmdStatus:    "status",
	CmdLogs:      "logs",
	CmdAlerts:    "alerts",
	CmdResolve:   "resolve",
	CmdStats:     "stats",
	CmdBlock:     "block",
	CmdReset:     "reset",
	CmdProducts:  "products",
	CmdProduct:   "product",
	CmdUsers:     "users",
	CmdDashboard: "dashboard",
	CmdServe:     "serve",
	CmdConfig:    "config",
	CmdVersion:   "version",
	CmdHelp:      "help",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// needsServices is false for commands that only touch the config file.
func (c Command) needsServices() bool {
	switch c {
	case CmdConfig, CmdVersion, CmdHelp:
		return false
	}
	return true
}

// Args holds the parsed command line.
type Args struct {
	JSON       bool
	Quiet      bool
	NoColor    bool
	Debug      bool
	ConfigPath string

	// Raw is everything after the command name, minus global flags.
	Raw []string
}

const usageText = `shopfront - terminal storefront with a security dashboard

Usage:
  shopfront                       Start the TUI (default)
  shopfront tui                   Start the TUI

Account:
  shopfront login [email]         Sign in (prompts for missing fields)
    --password <pw>               Password (prompted when omitted)
  shopfront logout                Sign out
  shopfront signup                Create an account
    --name <name> --email <email> [--password <pw>]
  shopfront status, whoami        Signed-in user, lockout and alert summary

Security:
  shopfront logs [--limit N] [--risk low|medium|high]
                                  Security log, newest first (default 20, 0 = all)
  shopfront alerts [--all]        Unresolved alerts (--all includes resolved)
  shopfront resolve <id>          Resolve an alert
  shopfront stats                 Alert and log counters
  shopfront block [user]          Block the local session and raise an alert
  shopfront reset                 Clear the block and the failed-login counter

Store:
  shopfront products [--category C] [--search Q]
  shopfront product <id>          Product details
  shopfront users [--status S] [--search Q]
  shopfront dashboard [--period week|month|quarter|year]

Other:
  shopfront serve                 Run the admin API (see config [server])
  shopfront config [show|path|init] [--force]
  shopfront version
  shopfront help

Global flags:
  --json                          Machine-readable output
  -q, --quiet                     Suppress informational messages
  --no-color                      Disable colors (also NO_COLOR=1)
  --config <path>                 Config file (default ~/.shopfront/config.toml)
  --debug                         Debug logging

Version: %s
`

// PrintUsage writes the help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "shopfront version %s\n", Version)
	fmt.Fprintf(w, "  commit: %s\n  built:  %s\n  go:     %s %s/%s\n",
		GitCommit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// =============================================================================
// PARSING
// =============================================================================

// Parse splits argv (without the program name) into a command and its
// arguments. No command means the TUI.
func Parse(argv []string) (Command, Args, error) {
	remaining, args, err := parseGlobalFlags(argv)
	if err != nil {
		return CmdHelp, args, err
	}
	if len(remaining) == 0 {
		return CmdTUI, args, nil
	}

	name, rest := remaining[0], remaining[1:]
	args.Raw = rest

	switch strings.ToLower(name) {
	case "tui", "ui":
		return CmdTUI, args, nil
	case "login", "signin":
		return CmdLogin, args, nil
	case "logout", "signout":
		return CmdLogout, args, nil
	case "signup", "register":
		return CmdSignup, args, nil
	case "status", "whoami", "s":
		return CmdStatus, args, nil
	case "logs", "log":
		return CmdLogs, args, nil
	case "alerts", "alert":
		return CmdAlerts, args, nil
	case "resolve":
		return CmdResolve, args, nil
	case "stats":
		return CmdStats, args, nil
	case "block":
		return CmdBlock, args, nil
	case "reset", "unblock":
		return CmdReset, args, nil
	case "products":
		return CmdProducts, args, nil
	case "product":
		return CmdProduct, args, nil
	case "users":
		return CmdUsers, args, nil
	case "dashboard":
		return CmdDashboard, args, nil
	case "serve", "server":
		return CmdServe, args, nil
	case "config":
		return CmdConfig, args, nil
	case "version", "-v", "--version":
		return CmdVersion, args, nil
	case "help", "-h", "--help":
		return CmdHelp, args, nil
	}
	return CmdHelp, args, &ValidationError{Field: "command", Value: name, Reason: "is not recognized", Example: "shopfront help"}
}

// parseGlobalFlags extracts the global flags wherever they appear.
func parseGlobalFlags(argv []string) ([]string, Args, error) {
	var args Args
	var remaining []string

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "--json":
			args.JSON = true
		case arg == "-q" || arg == "--quiet":
			args.Quiet = true
		case arg == "--no-color":
			args.NoColor = true
		case arg == "--debug":
			args.Debug = true
		case arg == "--config":
			if i+1 >= len(argv) {
				return nil, args, ErrMissingArgument("--config", "shopfront --config <path> <command>")
			}
			i++
			args.ConfigPath = argv[i]
		case strings.HasPrefix(arg, "--config="):
			args.ConfigPath = strings.TrimPrefix(arg, "--config=")
		default:
			remaining = append(remaining, arg)
		}
	}
	return remaining, args, nil
}

// =============================================================================
// ENVIRONMENT
// =============================================================================

// Env is what a command handler runs against.
type Env struct {
	Args       Args
	Config     *config.Config
	ConfigPath string
	Services   *app.Services
	Logger     *zap.Logger
	Out        io.Writer
	Err        io.Writer
	Prompter   Prompter
}

// emit prints data as a JSON envelope, or calls human in text mode.
func (e *Env) emit(cmd Command, data any, human func()) error {
	if e.Args.JSON {
		return NewJSONResponse(cmd.String(), data).Write(e.Out)
	}
	human()
	return nil
}

// info prints an informational line unless --quiet or --json.
func (e *Env) info(format string, a ...any) {
	if e.Args.Quiet || e.Args.JSON {
		return
	}
	fmt.Fprintf(e.Out, format+"\n", a...)
}

// warn prints to stderr unless --json.
func (e *Env) warn(msg string) {
	if e.Args.JSON {
		return
	}
	fmt.Fprintln(e.Err, WarningStyle.Render(msg))
}

// TUIFunc runs the interactive front end.
type TUIFunc func(ctx context.Context, env *Env) error

// =============================================================================
// MAIN
// =============================================================================

type runner struct {
	out, err io.Writer
	prompter Prompter
	tui      TUIFunc
	services *app.Services
	logger   *zap.Logger
}

// Option configures Main.
type Option func(*runner)

// WithTUI sets the handler for the tui command.
func WithTUI(fn TUIFunc) Option {
	return func(r *runner) { r.tui = fn }
}

// WithOutput redirects stdout and stderr.
func WithOutput(out, errOut io.Writer) Option {
	return func(r *runner) { r.out, r.err = out, errOut }
}

// WithPrompter replaces the terminal prompter.
func WithPrompter(p Prompter) Option {
	return func(r *runner) { r.prompter = p }
}

// WithServices uses svc instead of building services from config. Main
// does not close it.
func WithServices(svc *app.Services) Option {
	return func(r *runner) { r.services = svc }
}

// WithLogger uses l instead of the configured log destination.
func WithLogger(l *zap.Logger) Option {
	return func(r *runner) { r.logger = l }
}

// Main runs argv and returns the process exit code.
func Main(ctx context.Context, argv []string, opts ...Option) int {
	r := runner{out: os.Stdout, err: os.Stderr, prompter: terminalPrompter{}}
	for _, opt := range opts {
		opt(&r)
	}

	cmd, args, err := Parse(argv)
	if args.NoColor {
		ForceColorsEnabled(false)
	}
	if err != nil {
		DisplayError(r.err, "", err, args.JSON)
		return GetExitCode(err)
	}

	env, cleanup, err := r.setup(ctx, cmd, args)
	if err != nil {
		DisplayError(r.err, cmd.String(), err, args.JSON)
		return GetExitCode(err)
	}
	defer cleanup()

	if err := Run(ctx, cmd, env, r.tui); err != nil {
		env.Logger.Debug("command failed", zap.String("command", cmd.String()), zap.Error(err))
		errOut := r.err
		if args.JSON {
			errOut = r.out
		}
		DisplayError(errOut, cmd.String(), err, args.JSON)
		return GetExitCode(err)
	}
	return ExitSuccess
}

// setup loads config and, when the command needs them, the logger and
// services.
func (r *runner) setup(ctx context.Context, cmd Command, args Args) (*Env, func(), error) {
	env := &Env{Args: args, Out: r.out, Err: r.err, Prompter: r.prompter, Logger: logging.OrNop(r.logger)}
	cleanup := func() {}

	if cmd == CmdHelp || cmd == CmdVersion {
		return env, cleanup, nil
	}

	env.ConfigPath = args.ConfigPath
	if env.ConfigPath == "" {
		p, err := config.Path()
		if err != nil {
			return nil, nil, err
		}
		env.ConfigPath = p
	}

	switch {
	case r.services != nil:
		env.Config = r.services.Config
	case cmd == CmdConfig && len(args.Raw) > 0 && args.Raw[0] != "show":
		// path and init must work even when the file does not parse.
		env.Config = config.Default()
		return env, cleanup, nil
	default:
		cfg, err := config.LoadFromPath(env.ConfigPath)
		if err != nil {
			return nil, nil, err
		}
		env.Config = cfg
	}

	if !cmd.needsServices() {
		return env, cleanup, nil
	}

	if r.logger == nil {
		logger, err := newLogger(cmd, args, env.Config)
		if err != nil {
			return nil, nil, err
		}
		env.Logger = logger
		cleanup = func() { _ = logger.Sync() }
	}

	if r.services != nil {
		env.Services = r.services
		return env, cleanup, nil
	}

	svc, err := app.New(ctx, env.Config, app.WithLogger(env.Logger))
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	env.Services = svc
	prev := cleanup
	cleanup = func() {
		if err := svc.Close(); err != nil {
			env.Logger.Warn("close services", zap.Error(err))
		}
		prev()
	}
	return env, cleanup, nil
}

// newLogger writes to stderr for serve and to the log file otherwise, so
// command output and the TUI screen stay clean.
func newLogger(cmd Command, args Args, cfg *config.Config) (*zap.Logger, error) {
	opts := logging.Options{Level: cfg.Logging.Level, Component: cmd.String()}
	if args.Debug {
		opts.Level = "debug"
	}
	if cmd == CmdServe {
		opts.Stderr = true
		return logging.New(opts)
	}
	file, err := cfg.LogFile()
	if err != nil {
		return nil, err
	}
	opts.File = file
	return logging.New(opts)
}

// Run dispatches cmd. tui handles CmdTUI.
func Run(ctx context.Context, cmd Command, env *Env, tui TUIFunc) error {
	switch cmd {
	case CmdTUI:
		if tui == nil {
			return fmt.Errorf("tui is not available in this build")
		}
		return tui(ctx, env)
	case CmdLogin:
		return HandleLogin(ctx, env)
	case CmdLogout:
		return HandleLogout(ctx, env)
	case CmdSignup:
		return HandleSignup(ctx, env)
	case CmdStatus:
		return HandleStatus(ctx, env)
	case CmdLogs:
		return HandleLogs(ctx, env)
	case CmdAlerts:
		return HandleAlerts(ctx, env)
	case CmdResolve:
		return HandleResolve(ctx, env)
	case CmdStats:
		return HandleStats(ctx, env)
	case CmdBlock:
		return HandleBlock(ctx, env)
	case CmdReset:
		return HandleReset(ctx, env)
	case CmdProducts:
		return HandleProducts(ctx, env)
	case CmdProduct:
		return HandleProduct(ctx, env)
	case CmdUsers:
		return HandleUsers(ctx, env)
	case CmdDashboard:
		return HandleDashboard(ctx, env)
	case CmdServe:
		return HandleServe(ctx, env)
	case CmdConfig:
		return HandleConfig(ctx, env)
	case CmdVersion:
		if env.Args.JSON {
			return NewJSONResponse(cmd.String(), map[string]string{
				"version": Version, "commit": GitCommit, "built": BuildDate, "go": runtime.Version(),
			}).Write(env.Out)
		}
		PrintVersion(env.Out)
		return nil
	default:
		PrintUsage(env.Out)
		return nil
	}
}
