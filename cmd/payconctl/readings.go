package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/juan-moncayo/paycon-go/internal/infrastructure/mqtt"
	"github.com/juan-moncayo/paycon-go/internal/rest"
	"github.com/juan-moncayo/paycon-go/internal/telemetry"
)

func printReading(out io.Writer, r telemetry.Reading) {
	fmt.Fprintf(out, "%s", r.Timestamp.Local().Format(time.DateTime))
	if r.Temperature != nil {
		fmt.Fprintf(out, "  %.1f°C", *r.Temperature)
	}
	if r.Humidity != nil {
		fmt.Fprintf(out, "  %.0f%% RH", *r.Humidity)
	}
	if r.SoilMoisture != nil {
		fmt.Fprintf(out, "  soil %.0f%%", *r.SoilMoisture)
	}
	if r.LightIntensity != nil {
		fmt.Fprintf(out, "  %.0f lux", *r.LightIntensity)
	}
	if r.AirQuality != nil {
		fmt.Fprintf(out, "  air %.0f", *r.AirQuality)
	}
	fmt.Fprintln(out)
}

func newReadingsCmd(a *app) *cobra.Command {
	var (
		deviceID int
		watch    bool
		live     bool
	)

	cmd := &cobra.Command{
		Use:   "readings",
		Short: "Show sensor readings for a device",
		Long: `Show sensor readings for a device.

By default the stored history is fetched once, newest first. With
--watch the history is re-fetched on the configured poll interval. With
--live readings are streamed straight from the device's broker.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cred, err := a.credential()
			if err != nil {
				return err
			}
			id, err := resolveDevice(cmd, a, cred, deviceID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if live {
				return a.streamLive(cmd, cred, id)
			}

			if watch {
				poller, err := telemetry.NewPoller(a.readings, cred, id, a.cfg.GetPollInterval(),
					func(readings []telemetry.Reading) {
						if latest, ok := telemetry.Latest(readings); ok {
							printReading(out, latest)
						}
					})
				if err != nil {
					return err
				}
				poller.SetLogger(a.log.With("component", "poller"))

				if err := poller.Run(cmd.Context()); !errors.Is(err, cmd.Context().Err()) {
					return err
				}
				return nil
			}

			readings, err := a.readings.List(cmd.Context(), cred, id)
			if err != nil {
				return err
			}
			for _, r := range readings {
				printReading(out, r)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&deviceID, "device", 0, "device id (default device used when omitted)")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-fetch on the configured poll interval")
	cmd.Flags().BoolVar(&live, "live", false, "stream readings from the device's broker")
	cmd.MarkFlagsMutuallyExclusive("watch", "live")
	return cmd
}

// streamLive connects to the device's own broker and prints readings as
// they are published, until interrupted.
func (a *app) streamLive(cmd *cobra.Command, cred rest.Credential, deviceID int) error {
	if _, err := a.devices.Refresh(cmd.Context(), cred); err != nil {
		return err
	}
	dev, err := a.devices.Get(deviceID)
	if err != nil {
		return err
	}

	mqttCfg := a.cfg.Telemetry.MQTT
	opts := mqtt.Options{
		Descriptor:            dev.Descriptor(),
		QoS:                   mqttCfg.QoS,
		TLS:                   mqttCfg.TLS,
		ConnectTimeout:        time.Duration(mqttCfg.ConnectTimeout) * time.Second,
		ReconnectInitialDelay: time.Duration(mqttCfg.Reconnect.InitialDelay) * time.Second,
		ReconnectMaxDelay:     time.Duration(mqttCfg.Reconnect.MaxDelay) * time.Second,
	}

	out := cmd.OutOrStdout()
	feed, err := telemetry.OpenLiveFeed(opts, func(r telemetry.Reading) {
		printReading(out, r)
	})
	if err != nil {
		return err
	}
	defer feed.Close()
	feed.SetLogger(a.log.With("component", "livefeed"))

	fmt.Fprintf(out, "Streaming from %s (topic %s), Ctrl+C to stop\n", dev.MQTTServer, feed.Topic())
	<-cmd.Context().Done()
	return nil
}
