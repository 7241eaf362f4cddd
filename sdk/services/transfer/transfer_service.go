// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"errors"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/spf13/afero"

	"github.com/xnat-tools/xnatio/sdk/config"
	"github.com/xnat-tools/xnatio/sdk/events"
)

var (
	ErrCancelled    = errors.New("download cancelled")
	ErrQueueRunning = errors.New("download queue is already being drained")
)

// SizeLookup resolves a file name to a byte size known from earlier listings.
type SizeLookup interface {
	FileSize(name string) (int64, bool)
}

type TransferService struct {
	http  config.CoreHTTP
	fs    afero.Fs
	bus   *events.Bus
	sizes SizeLookup
	log   *slog.Logger
	chunk int

	queue    *Queue
	draining atomic.Bool
}

type Option func(*TransferService)

func WithFs(fs afero.Fs) Option {
	return func(s *TransferService) { s.fs = fs }
}

func WithSizeLookup(l SizeLookup) Option {
	return func(s *TransferService) { s.sizes = l }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *TransferService) { s.log = l }
}

func WithBus(b *events.Bus) Option {
	return func(s *TransferService) { s.bus = b }
}

func NewTransferService(http config.CoreHTTP, conf config.TransferConfig, opts ...Option) *TransferService {
	s := &TransferService{
		http:  http,
		chunk: conf.Chunk(),
		queue: &Queue{},
	}
	for _, o := range opts {
		o(s)
	}
	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}
	if s.bus == nil {
		s.bus = events.NewBus()
	}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}
