// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

// Package xnatio is the entry point of the SDK: one Client per XNAT login,
// owning the REST core, the caches and the download queue.
package xnatio

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/spf13/afero"

	"github.com/xnat-tools/xnatio/sdk/config"
	"github.com/xnat-tools/xnatio/sdk/events"
	"github.com/xnat-tools/xnatio/sdk/services/browse"
	"github.com/xnat-tools/xnatio/sdk/services/crud"
	"github.com/xnat-tools/xnatio/sdk/services/transfer"
	"github.com/xnat-tools/xnatio/sdk/xnat"
)

type Client struct {
	httpClient *http.Client
	fs         afero.Fs
	log        *slog.Logger
	bus        *events.Bus
	transfer   config.TransferConfig

	mu       sync.RWMutex
	core     config.CoreHTTP
	browser  *browse.BrowseService
	mover    *transfer.TransferService
	resource *crud.CrudService
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.httpClient = h } }
func WithFs(fs afero.Fs) Option            { return func(c *Client) { c.fs = fs } }
func WithLogger(l *slog.Logger) Option     { return func(c *Client) { c.log = l } }

func WithTransferConfig(t config.TransferConfig) Option {
	return func(c *Client) { c.transfer = t }
}

func New(opts ...Option) *Client {
	c := &Client{bus: events.NewBus()}
	for _, o := range opts {
		o(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.transfer.Timeout}
	}
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}
	if c.log == nil {
		c.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c.Configure("", "", "")
	return c
}

// NewFromConfig validates conf and returns a client already configured for
// conf.Core.
func NewFromConfig(conf config.Config, opts ...Option) (*Client, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	c := New(append([]Option{WithTransferConfig(conf.Transfer)}, opts...)...)
	c.Configure(conf.Core.Host, conf.Core.Username, conf.Core.Password)
	return c, nil
}

// Configure replaces the connection context. Caches and the pending queue
// start empty; subscribers are kept. No network call is made and empty
// values are accepted as-is. Must not be called while the queue drains.
func (c *Client) Configure(host, user, password string) {
	core := config.NewHTTPCore(c.httpClient, config.CoreConfig{
		Host:     host,
		Username: user,
		Password: password,
	})
	browser := browse.NewBrowseService(core, c.bus, c.log)
	mover := transfer.NewTransferService(core, c.transfer,
		transfer.WithFs(c.fs),
		transfer.WithBus(c.bus),
		transfer.WithLogger(c.log),
		transfer.WithSizeLookup(browser),
	)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.core = core
	c.browser = browser
	c.mover = mover
	c.resource = crud.NewCrudService(core)
}

func (c *Client) Host() string { return c.rest().Host() }
func (c *Client) User() string { return c.rest().User() }

// AuthHeader is the Basic-Auth value sent with every request.
func (c *Client) AuthHeader() string { return c.rest().AuthHeader() }

func (c *Client) MakeURL(path string) string { return c.rest().MakeURL(path) }

func (c *Client) rest() config.CoreHTTP {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.core
}

func (c *Client) Browse() *browse.BrowseService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.browser
}

func (c *Client) Transfer() *transfer.TransferService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mover
}

func (c *Client) Crud() *crud.CrudService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resource
}

func (c *Client) Subscribe(kind events.Kind, h events.Handler) { c.bus.Subscribe(kind, h) }
func (c *Client) ClearSubscribers()                            { c.bus.Clear() }

/* ------------ browsing ------------ */

func (c *Client) ListFolder(ctx context.Context, uris, attrs, filters []string) ([]xnat.Row, error) {
	return c.Browse().ListFolder(ctx, browse.ListRequest{URIs: uris, Attributes: attrs, Filters: filters})
}

func (c *Client) Search(ctx context.Context, term string) (map[xnat.Level][]xnat.Row, error) {
	return c.Browse().Search(ctx, term)
}

func (c *Client) Projects() []xnat.Row { return c.Browse().Projects() }

/* ------------ transfers ------------ */

func (c *Client) DownloadFile(ctx context.Context, src, dst string) error {
	return c.Transfer().DownloadFile(ctx, src, dst)
}

func (c *Client) UploadFile(ctx context.Context, localPath, remoteURI string, deleteExisting bool) error {
	return c.Transfer().UploadFile(ctx, localPath, remoteURI, deleteExisting)
}

func (c *Client) Enqueue(src, dst string) string { return c.Transfer().Enqueue(src, dst) }
func (c *Client) Cancel(src string) int          { return c.Transfer().Cancel(src) }
func (c *Client) ClearQueue()                    { c.Transfer().ClearQueue() }

func (c *Client) StartQueue(ctx context.Context, onStart, onFinish func()) error {
	return c.Transfer().StartQueue(ctx, onStart, onFinish)
}

/* ------------ resources ------------ */

func (c *Client) DeleteResource(ctx context.Context, uri string) error {
	return c.Crud().Delete(ctx, uri)
}

func (c *Client) CreateFolder(ctx context.Context, uri string) error {
	return c.Crud().CreateFolder(ctx, uri)
}
