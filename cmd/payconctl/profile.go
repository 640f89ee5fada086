package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the account profile",
	}
	cmd.AddCommand(newProfileShowCmd(a), newProfileEditCmd(a))
	return cmd
}

func newProfileShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the account profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cred, err := a.credential()
			if err != nil {
				return err
			}

			p, err := a.profiles.Get(cmd.Context(), cred)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Username: %s\n", p.Username)
			fmt.Fprintf(out, "Name:     %s\n", p.Name)
			fmt.Fprintf(out, "Email:    %s\n", p.Email)
			fmt.Fprintf(out, "Phone:    %s\n", p.PhoneNumber)
			fmt.Fprintf(out, "Address:  %s\n", p.Address)

			account, err := a.profiles.Account(cmd.Context(), cred)
			if err != nil {
				return err
			}
			if account.DefaultDevice != nil {
				fmt.Fprintf(out, "Default device: %d (%s)\n",
					account.DefaultDevice.ID, account.DefaultDevice.Name)
			}
			return nil
		},
	}
}

func newProfileEditCmd(a *app) *cobra.Command {
	var name, phone, address string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Update the account's contact details",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cred, err := a.credential()
			if err != nil {
				return err
			}

			// The service wants the whole profile back, so start from
			// the stored one and overlay the changed fields. Email is
			// not editable.
			p, err := a.profiles.Get(cmd.Context(), cred)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("phone") {
				p.PhoneNumber = phone
			}
			if cmd.Flags().Changed("address") {
				p.Address = address
			}

			updated, err := a.profiles.Update(cmd.Context(), cred, p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile for %s updated\n", updated.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&address, "address", "", "postal address")
	return cmd
}
