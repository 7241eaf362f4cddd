// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xnat-tools/xnatio/sdk/utils"
	"github.com/xnat-tools/xnatio/sdk/xnat"
)

func newLsCmd(a *app) *cobra.Command {
	var filters, attrs []string

	cmd := &cobra.Command{
		Use:   "ls <uri>...",
		Short: "List an archive folder",
		Long: `List the children of one or more archive folders. Rows of all folders
are printed together; folders that fail are reported and skipped.

Named filters: accessible, imagingsessions, mrsessions, petsessions, json,
zip. Other filters are passed as key=value query parameters.`,
		Example: `  xnatio ls /projects --filter accessible
  xnatio ls /projects/P1/subjects -o json
  xnatio ls /experiments/E1/scans/1/files --attr Name --attr Size`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			rows, err := c.ListFolder(cmd.Context(), args, attrs, filters)
			if err != nil {
				return err
			}
			return utils.PrintRows(a.out, a.output, xnat.LevelOf(args[0]), rows)
		},
	}
	cmd.Flags().StringSliceVarP(&filters, "filter", "f", nil, "Query filter (repeatable)")
	cmd.Flags().StringSliceVar(&attrs, "attr", nil, "Only keep these attributes (repeatable)")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search projects, subjects and experiments",
		Long: `Search every searchable attribute of projects, subjects and imaging
experiments for <term>. A row matching several attributes is listed once per
attribute.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			res, err := c.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if utils.TranslateFormat(a.output) != utils.FormatShort {
				return utils.PrintValue(a.out, a.output, res)
			}
			for _, level := range xnat.SearchLevels {
				fmt.Fprintf(a.out, "%s (%d):\n", level, len(res[level]))
				if len(res[level]) == 0 {
					continue
				}
				if err := utils.PrintRows(a.out, a.output, level, res[level]); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
