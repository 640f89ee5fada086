package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/juan-moncayo/paycon-go/internal/device"
	"github.com/juan-moncayo/paycon-go/internal/rest"
)

// gateDispatcher executes device actions the superuser gate has
// confirmed. Create and edit need the draft collected before the gate
// was opened, so it is staged here.
type gateDispatcher struct {
	app *app
	out io.Writer

	draft *device.Draft
}

func (d *gateDispatcher) Dispatch(ctx context.Context, cred rest.Credential, action device.PendingAction) error {
	switch action.Kind {
	case device.KindCreate:
		if d.draft == nil {
			return fmt.Errorf("no device draft staged for create")
		}
		created, err := d.app.devices.Create(ctx, cred, *d.draft)
		if err != nil {
			return err
		}
		fmt.Fprintf(d.out, "Device %d (%s) registered\n", created.ID, created.Name)
	case device.KindEdit:
		if d.draft == nil {
			return fmt.Errorf("no device draft staged for edit")
		}
		updated, err := d.app.devices.Update(ctx, cred, action.DeviceID, *d.draft)
		if err != nil {
			return err
		}
		fmt.Fprintf(d.out, "Device %d (%s) updated\n", updated.ID, updated.Name)
	case device.KindDelete:
		if err := d.app.devices.Delete(ctx, cred, action.DeviceID); err != nil {
			return err
		}
		fmt.Fprintf(d.out, "Device %d deleted\n", action.DeviceID)
	default:
		return fmt.Errorf("unknown gated action %q", action.Kind)
	}
	d.draft = nil
	return nil
}

// confirmGated collects superuser credentials and confirms the pending
// action, retrying the prompt while the service rejects them.
func confirmGated(cmd *cobra.Command, a *app, cred rest.Credential, username, password string) error {
	if username == "" {
		var err error
		if username, err = promptSecret(cmd, "Superuser username"); err != nil {
			return err
		}
	}
	if password == "" {
		var err error
		if password, err = promptSecret(cmd, "Superuser password"); err != nil {
			return err
		}
	}
	return a.gate.Confirm(cmd.Context(), cred, username, password)
}

func superuserFlags(cmd *cobra.Command, username, password *string) {
	cmd.Flags().StringVar(username, "su-username", "", "superuser username (prompted when omitted)")
	cmd.Flags().StringVar(password, "su-password", "", "superuser password (prompted when omitted)")
}

func draftFlags(cmd *cobra.Command, draft *device.Draft) {
	cmd.Flags().StringVar(&draft.Name, "name", "", "device name")
	cmd.Flags().StringVar(&draft.MQTTServer, "mqtt-server", "", "broker host")
	cmd.Flags().IntVar(&draft.MQTTPort, "mqtt-port", 1883, "broker port")
	cmd.Flags().StringVar(&draft.MQTTUsername, "mqtt-username", "", "broker username")
	cmd.Flags().StringVar(&draft.MQTTPassword, "mqtt-password", "", "broker password")
	cmd.Flags().StringVar(&draft.MQTTVHost, "mqtt-vhost", "", "broker virtual host")
	cmd.Flags().StringVar(&draft.MQTTExchange, "mqtt-exchange", "", "broker exchange")
	cmd.Flags().StringVar(&draft.MQTTRoutingKey, "mqtt-routing-key", "", "routing key the device publishes on")
}

func newDevicesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devices",
		Short: "Manage registered irrigation devices",
	}
	cmd.AddCommand(
		newDevicesListCmd(a),
		newDevicesShowCmd(a),
		newDevicesAddCmd(a),
		newDevicesEditCmd(a),
		newDevicesDeleteCmd(a),
	)
	return cmd
}

func newDevicesShowCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a device and its recent readings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("device id must be a number: %w", err)
			}
			cred, err := a.credential()
			if err != nil {
				return err
			}

			if _, err := a.devices.Refresh(cmd.Context(), cred); err != nil {
				return err
			}
			dev, err := a.devices.Get(id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Device %d: %s\n", dev.ID, dev.Name)
			fmt.Fprintf(out, "Broker: %s:%d (topic %s)\n",
				dev.MQTTServer, dev.MQTTPort, dev.Descriptor().Topic())
			fmt.Fprintf(out, "Registered: %s\n", dev.CreatedAt.Local().Format("2006-01-02"))

			readings, err := a.devices.Readings(cmd.Context(), cred, id)
			if err != nil {
				return err
			}
			if len(readings) > limit {
				readings = readings[:limit]
			}
			fmt.Fprintln(out, "Recent readings:")
			for _, r := range readings {
				printReading(out, r)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "number of recent readings to show")
	return cmd
}

func newDevicesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered devices",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cred, err := a.credential()
			if err != nil {
				return err
			}

			devices, err := a.devices.Refresh(cmd.Context(), cred)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tBROKER\tLAST READING")
			for _, d := range devices {
				last := "-"
				if d.LatestReading != nil && d.LatestReading.Temperature != nil {
					last = fmt.Sprintf("%.1f°C", *d.LatestReading.Temperature)
				}
				fmt.Fprintf(w, "%d\t%s\t%s:%d\t%s\n", d.ID, d.Name, d.MQTTServer, d.MQTTPort, last)
			}
			return w.Flush()
		},
	}
}

func newDevicesAddCmd(a *app) *cobra.Command {
	var (
		draft              device.Draft
		suUser, suPassword string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new device (superuser confirmation required)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cred, err := a.credential()
			if err != nil {
				return err
			}
			if err := draft.Validate(); err != nil {
				return err
			}

			a.dispatcher.draft = &draft
			a.dispatcher.out = cmd.OutOrStdout()
			a.gate.Request(device.KindCreate, 0)
			return confirmGated(cmd, a, cred, suUser, suPassword)
		},
	}

	draftFlags(cmd, &draft)
	superuserFlags(cmd, &suUser, &suPassword)
	cmd.MarkFlagRequired("name")
	return cmd
}

func newDevicesEditCmd(a *app) *cobra.Command {
	var (
		draft              device.Draft
		suUser, suPassword string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a device (superuser confirmation required)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("device id must be a number: %w", err)
			}
			cred, err := a.credential()
			if err != nil {
				return err
			}
			if err := draft.Validate(); err != nil {
				return err
			}

			a.dispatcher.draft = &draft
			a.dispatcher.out = cmd.OutOrStdout()
			a.gate.Request(device.KindEdit, id)
			return confirmGated(cmd, a, cred, suUser, suPassword)
		},
	}

	draftFlags(cmd, &draft)
	superuserFlags(cmd, &suUser, &suPassword)
	return cmd
}

func newDevicesDeleteCmd(a *app) *cobra.Command {
	var suUser, suPassword string

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a device (superuser confirmation required)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("device id must be a number: %w", err)
			}
			cred, err := a.credential()
			if err != nil {
				return err
			}

			a.dispatcher.out = cmd.OutOrStdout()
			a.gate.Request(device.KindDelete, id)
			return confirmGated(cmd, a, cred, suUser, suPassword)
		},
	}

	superuserFlags(cmd, &suUser, &suPassword)
	return cmd
}
