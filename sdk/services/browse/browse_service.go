// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package browse

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/xnat-tools/xnatio/sdk/config"
	"github.com/xnat-tools/xnatio/sdk/events"
	"github.com/xnat-tools/xnatio/sdk/xnat"
)

var ErrListingFailed = errors.New("every listing request failed")

// BrowseService lists XNAT folders and keeps the project and file-metadata
// caches of one connection.
type BrowseService struct {
	http config.CoreHTTP
	bus  *events.Bus
	log  *slog.Logger

	mu       sync.RWMutex
	projects []xnat.Row
	files    map[string]xnat.Row
}

func NewBrowseService(http config.CoreHTTP, bus *events.Bus, log *slog.Logger) *BrowseService {
	if bus == nil {
		bus = events.NewBus()
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &BrowseService{
		http:  http,
		bus:   bus,
		log:   log,
		files: map[string]xnat.Row{},
	}
}
