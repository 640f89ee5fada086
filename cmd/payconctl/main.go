// payconctl is the command line client for the Paycon irrigation
// monitoring service: accounts, devices, watering schedules, run logs
// and sensor readings.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/juan-moncayo/paycon-go/internal/device"
	"github.com/juan-moncayo/paycon-go/internal/infrastructure/config"
	"github.com/juan-moncayo/paycon-go/internal/infrastructure/logging"
	"github.com/juan-moncayo/paycon-go/internal/irrigation"
	"github.com/juan-moncayo/paycon-go/internal/profile"
	"github.com/juan-moncayo/paycon-go/internal/rest"
	"github.com/juan-moncayo/paycon-go/internal/session"
	"github.com/juan-moncayo/paycon-go/internal/telemetry"
)

// Version information set at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// app bundles the wired services behind every command.
type app struct {
	cfg *config.Config
	log *logging.Logger

	api       *rest.Client
	session   *session.Service
	store     session.Store
	profiles  *profile.Manager
	devices   *device.Registry
	gate      *device.Gate
	schedules *irrigation.Manager
	readings  *telemetry.Client

	// dispatcher executes gated device actions once confirmed.
	dispatcher *gateDispatcher
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", rest.Message(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var configPath string

	root := &cobra.Command{
		Use:           "payconctl",
		Short:         "Client for the Paycon irrigation monitoring service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.wire(configPath)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (YAML)")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newRegisterCmd(a),
		newProfileCmd(a),
		newDevicesCmd(a),
		newSchedulesCmd(a),
		newLogsCmd(a),
		newReadingsCmd(a),
		newVersionCmd(),
	)

	return root
}

// wire loads configuration and builds the service graph.
func (a *app) wire(configPath string) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadOrDefault("")
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	a.log = logging.New(cfg.Logging, version)

	a.api = rest.NewClient(rest.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.GetRequestTimeout(),
		UserAgent: cfg.API.UserAgent,
	})
	a.api.SetLogger(a.log.With("component", "rest"))

	tokenPath, err := cfg.ResolveTokenPath()
	if err != nil {
		return fmt.Errorf("resolving token path: %w", err)
	}
	a.store = session.NewFileStore(tokenPath)

	a.session = session.NewService(a.api, a.store)
	a.session.SetLogger(a.log.With("component", "session"))

	a.profiles = profile.NewManager(a.api)

	a.devices = device.NewRegistry(a.api, a.profiles)
	a.devices.SetLogger(a.log.With("component", "device"))

	a.dispatcher = &gateDispatcher{app: a, out: os.Stdout}
	a.gate = device.NewGate(a.api, a.dispatcher)
	a.gate.SetLogger(a.log.With("component", "gate"))

	a.schedules = irrigation.NewManager(a.api)
	a.schedules.SetLogger(a.log.With("component", "irrigation"))

	a.readings = telemetry.NewClient(a.api)

	return nil
}

// credential returns the stored token or an error telling the user to
// log in first.
func (a *app) credential() (rest.Credential, error) {
	cred, err := a.session.Current()
	if err != nil {
		return "", fmt.Errorf("not logged in, run \"payconctl login\" first: %w", err)
	}
	return cred, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "payconctl %s (%s)\n", version, commit)
		},
	}
}
