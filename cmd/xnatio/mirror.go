// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/xnat-tools/xnatio/sdk/config"
	"github.com/xnat-tools/xnatio/sdk/services/mirror"
	"github.com/xnat-tools/xnatio/sdk/settings"
	"github.com/xnat-tools/xnatio/sdk/utils"
)

func newMirrorCmd(a *app) *cobra.Command {
	var bucket, prefix string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "mirror <dir>",
		Short: "Copy a downloaded tree into an S3 bucket",
		Long: `Upload every file under <dir> to an S3-compatible bucket, keyed by its
path relative to <dir> below --prefix. Objects that already exist with the
same size are skipped unless --overwrite is given.

Credentials come from the usual AWS sources (AWS_ACCESS_KEY_ID,
AWS_SECRET_ACCESS_KEY, shared config). AWS_REGION and AWS_ENDPOINT_URL select
the store; the bucket defaults to XNAT_S3_BUCKET.`,
		Example: `  xnatio mirror ./dl/E1 --bucket archive --prefix xnat/E1`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := a.resolved(bucket, settings.KeyBucket)
			if b == "" {
				return errors.New("--bucket is required")
			}
			svc, err := mirror.NewS3MirrorService(cmd.Context(), config.S3Config{
				Region:      a.v.GetString(settings.KeyS3Region),
				EndpointURL: a.v.GetString(settings.KeyS3Endpoint),
			}, a.fs, a.log)
			if err != nil {
				return err
			}
			res, err := svc.Mirror(cmd.Context(), mirror.MirrorRequest{
				Dir:       args[0],
				Bucket:    b,
				Prefix:    prefix,
				Overwrite: overwrite,
				Hook:      utils.UploadHook(a.errOut),
			})
			if err != nil {
				return err
			}
			return utils.PrintValue(a.out, a.output, res)
		},
	}
	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "Target bucket")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix inside the bucket")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Upload even when an object of the same size exists")
	return cmd
}
