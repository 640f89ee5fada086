package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newLogsCmd(a *app) *cobra.Command {
	var deviceID int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the watering run log for a device",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cred, err := a.credential()
			if err != nil {
				return err
			}
			id, err := resolveDevice(cmd, a, cred, deviceID)
			if err != nil {
				return err
			}

			logs, err := a.schedules.Logs(cmd.Context(), cred, id)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTART\tEND\tWATER USED")
			for _, entry := range logs {
				fmt.Fprintf(w, "%d\t%s\t%s\t%.1f L\n",
					entry.ID,
					entry.StartTime.Local().Format(time.DateTime),
					entry.EndTime.Local().Format(time.DateTime),
					entry.WaterUsed)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&deviceID, "device", 0, "device id (default device used when omitted)")
	return cmd
}
