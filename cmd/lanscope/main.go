package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/probeworks/lanscope/internal/config"
	"github.com/probeworks/lanscope/internal/event"
	"github.com/probeworks/lanscope/internal/portscan"
	"github.com/probeworks/lanscope/internal/registry"
	"github.com/probeworks/lanscope/internal/sandbox"
	"github.com/probeworks/lanscope/internal/sweep"
	"github.com/probeworks/lanscope/internal/version"
	"github.com/probeworks/lanscope/pkg/plugin"
)

const usage = `lanscope - LAN discovery and diagnostics

Usage:
  lanscope sweep  [-config file] [-subnet cidr] [-json]
  lanscope ports  [-config file] [-ports list] [-json] <target>
  lanscope exec   [-config file] <command...>
  lanscope status [-config file] [-json]
  lanscope version

Commands:
  sweep    discover live hosts on the local subnet
  ports    scan TCP ports on a single target
  exec     run an allowlisted diagnostic command
  status   report module health
  version  print version information
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "sweep":
		runSweep(os.Args[2:])
	case "ports":
		runPorts(os.Args[2:])
	case "exec":
		runExec(os.Args[2:])
	case "status":
		runStatus(os.Args[2:])
	case "version":
		fmt.Println(version.Info())
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
}

// app wires the shared services and the three modules. The CLI runs one
// operation per invocation; modules still go through the full registry
// lifecycle so configuration and shutdown behave the same as long-running
// deployments.
type app struct {
	logger   *zap.Logger
	reg      *registry.Registry
	sweep    *sweep.Module
	portscan *portscan.Module
	sandbox  *sandbox.Module
}

func newApp(configPath string) *app {
	viperCfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	cfg := config.New(viperCfg)

	logger, err := config.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Debug("lanscope starting", zap.String("version", version.Short()))
	if f := viperCfg.ConfigFileUsed(); f != "" {
		logger.Debug("configuration loaded", zap.String("source", f))
	}

	bus := event.NewBus(logger.Named("event"))
	reg := registry.New(logger.Named("registry"))

	a := &app{
		logger:   logger,
		reg:      reg,
		sweep:    sweep.New(),
		portscan: portscan.New(),
		sandbox:  sandbox.New(),
	}

	for _, m := range []plugin.Plugin{a.sweep, a.portscan, a.sandbox} {
		if err := reg.Register(m); err != nil {
			logger.Fatal("failed to register module", zap.Error(err))
		}
	}
	if err := reg.Validate(); err != nil {
		logger.Fatal("module validation failed", zap.Error(err))
	}

	ctx := context.Background()
	if err := reg.InitAll(ctx, func(name string) plugin.Dependencies {
		return plugin.Dependencies{
			Config: cfg.Sub("modules." + name),
			Logger: logger.Named(name),
			Bus:    bus,
		}
	}); err != nil {
		logger.Fatal("failed to initialize modules", zap.Error(err))
	}
	if err := reg.StartAll(ctx); err != nil {
		logger.Fatal("failed to start modules", zap.Error(err))
	}

	return a
}

func (a *app) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.reg.StopAll(ctx)
	_ = a.logger.Sync()
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runSweep(args []string) {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	subnet := fs.String("subnet", "", "CIDR to sweep (defaults to configured subnet)")
	asJSON := fs.Bool("json", false, "emit JSON instead of a table")
	_ = fs.Parse(args)

	a := newApp(*configPath)
	defer a.shutdown()

	ctx, cancel := signalContext()
	defer cancel()

	report, err := a.sweep.Discover(ctx, *subnet)
	if err != nil {
		a.logger.Error("sweep failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "sweep failed: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		printJSON(report)
		return
	}
	renderSweep(report)
}

func runPorts(args []string) {
	fs := flag.NewFlagSet("ports", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	portList := fs.String("ports", "", "comma-separated ports (defaults to the common set)")
	asJSON := fs.Bool("json", false, "emit JSON instead of a table")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: lanscope ports [-ports list] <target>")
		os.Exit(2)
	}
	target := fs.Arg(0)

	ports, err := parsePorts(*portList)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -ports value: %v\n", err)
		os.Exit(2)
	}

	a := newApp(*configPath)
	defer a.shutdown()

	ctx, cancel := signalContext()
	defer cancel()

	report, err := a.portscan.Scan(ctx, target, ports)
	if err != nil {
		a.logger.Error("port scan failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "port scan failed: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		printJSON(report)
		return
	}
	renderPorts(report)
}

func runExec(args []string) {
	fs := flag.NewFlagSet("exec", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	_ = fs.Parse(args)

	a := newApp(*configPath)
	defer a.shutdown()

	ctx, cancel := signalContext()
	defer cancel()

	raw := joinArgs(fs.Args())
	outcome := a.sandbox.Run(ctx, raw)
	fmt.Println(outcome.Output)
	if !outcome.Success {
		os.Exit(1)
	}
}

func runStatus(args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	asJSON := fs.Bool("json", false, "emit JSON instead of a table")
	_ = fs.Parse(args)

	a := newApp(*configPath)
	defer a.shutdown()

	ctx, cancel := signalContext()
	defer cancel()

	health := a.reg.HealthAll(ctx)
	if *asJSON {
		printJSON(health)
		return
	}
	renderStatus(health)
}
