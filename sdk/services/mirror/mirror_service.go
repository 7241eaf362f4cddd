// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package mirror

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/xnat-tools/xnatio/sdk/config"
)

// ObjectStore is the part of config.S3Client the mirror needs.
type ObjectStore interface {
	ObjectSizes(ctx context.Context, bucket, prefix string) (map[string]int64, error)
	PutObject(ctx context.Context, bucket, key string, body io.ReadSeeker, size int64, hook *config.ProgressHook) error
}

type MirrorService struct {
	store ObjectStore
	fs    afero.Fs
	log   *slog.Logger
}

func NewMirrorService(store ObjectStore, fs afero.Fs, log *slog.Logger) *MirrorService {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &MirrorService{store: store, fs: fs, log: log}
}

// NewS3MirrorService connects to the bucket store described by conf.
func NewS3MirrorService(ctx context.Context, conf config.S3Config, fs afero.Fs, log *slog.Logger) (*MirrorService, error) {
	client, err := config.NewS3Client(ctx, conf)
	if err != nil {
		return nil, err
	}
	return NewMirrorService(client, fs, log), nil
}
