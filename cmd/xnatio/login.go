// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xnat-tools/xnatio/sdk/settings"
	"github.com/xnat-tools/xnatio/sdk/utils"
	"github.com/xnat-tools/xnatio/sdk/xnat"
)

func newLoginCmd(a *app) *cobra.Command {
	var makeDefault bool

	cmd := &cobra.Command{
		Use:   "login <name>",
		Short: "Store an XNAT host under a name",
		Long: `Store an XNAT host URL and user name under <name>.

When a password is available the credentials are checked against the server
first. The password itself is never written to the settings file.`,
		Example: `  xnatio login central --url https://central.xnat.org --user alice --default
  XNAT_PASSWORD=secret xnatio login local --url http://localhost:8080 -u admin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.url == "" {
				return errors.New("--url is required")
			}
			if a.resolved(a.password, settings.KeyPassword) != "" {
				c, err := a.client()
				if err != nil {
					return err
				}
				if _, _, err := c.Crud().Get(cmd.Context(), "/"+string(xnat.Projects), "accessible"); err != nil {
					return fmt.Errorf("login check failed: %w", err)
				}
			}

			h := settings.Host{
				Name:     args[0],
				URL:      a.url,
				Username: a.resolved(a.user, settings.KeyUser),
				Default:  makeDefault || len(a.store.Hosts()) == 0,
			}
			if err := a.store.PutHost(h); err != nil {
				return err
			}
			if err := a.store.Save(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Host %s saved to %s\n", h.Name, a.store.Path())
			return nil
		},
	}
	cmd.Flags().BoolVar(&makeDefault, "default", false, "Make this the default host")
	return cmd
}

func newHostsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hosts",
		Short: "List stored hosts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hosts := a.store.Hosts()
			if utils.TranslateFormat(a.output) != utils.FormatShort {
				return utils.PrintValue(a.out, a.output, hosts)
			}
			rows := make([]xnat.Row, 0, len(hosts))
			for _, h := range hosts {
				def := ""
				if h.Default {
					def = "*"
				}
				rows = append(rows, xnat.Row{"name": h.Name, "url": h.URL, "username": h.Username, "default": def})
			}
			return utils.PrintRows(a.out, a.output, "hosts", rows)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <name>",
		Short: "Forget a stored host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.store.RemoveHost(args[0]) {
				return fmt.Errorf("%w: %s", settings.ErrUnknownHost, args[0])
			}
			return a.store.Save()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "default <name>",
		Short: "Make a stored host the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.SetDefault(args[0]); err != nil {
				return err
			}
			return a.store.Save()
		},
	})
	return cmd
}
