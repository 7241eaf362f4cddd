// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/xnat-tools/xnatio/sdk/config"
	"github.com/xnat-tools/xnatio/sdk/events"
	"github.com/xnat-tools/xnatio/sdk/xnat"
)

/* ------------ single-line progress driven by download events ------------ */

var spinner = []rune{'|', '/', '-', '\\'}

type Progress struct {
	w        io.Writer
	interval time.Duration

	mu       sync.Mutex
	name     string
	total    int64
	done     int64
	spinIdx  int
	lastTick time.Time
}

// NewProgress renders at most once per interval; zero renders every event.
func NewProgress(w io.Writer, interval time.Duration) *Progress {
	return &Progress{w: w, interval: interval}
}

// Subscriber is satisfied by events.Bus and xnatio.Client.
type Subscriber interface {
	Subscribe(kind events.Kind, h events.Handler)
}

// Attach subscribes the renderer to every download event kind.
func (p *Progress) Attach(bus Subscriber) {
	bus.Subscribe(events.DownloadStarted, p.started)
	bus.Subscribe(events.Downloading, p.progress)
	bus.Subscribe(events.DownloadFinished, func(ev events.Event) { p.finish(ev, "done") })
	bus.Subscribe(events.DownloadFailed, func(ev events.Event) { p.finish(ev, "failed: "+ev.Err) })
	bus.Subscribe(events.DownloadCancelled, func(ev events.Event) { p.finish(ev, "cancelled") })
}

func (p *Progress) started(ev events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.name = xnat.BaseName(ev.URI)
	p.total = ev.Total
	p.done = 0
	p.render(true)
}

func (p *Progress) progress(ev events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done = ev.Downloaded
	p.render(false)
}

func (p *Progress) finish(ev events.Event, outcome string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.name == "" {
		p.name = xnat.BaseName(ev.URI)
	}
	p.render(true)
	fmt.Fprintf(p.w, " %s\n", outcome)
	p.name = ""
}

func (p *Progress) render(force bool) {
	if !force && p.interval > 0 && time.Since(p.lastTick) < p.interval {
		return
	}
	p.lastTick = time.Now()

	if p.total > 0 {
		done := min(p.done, p.total)
		pct := float64(done) / float64(p.total) * 100
		fmt.Fprintf(p.w, "\r%s: %6.2f%% (%s / %s)",
			p.name, pct, humanize.Bytes(uint64(done)), humanize.Bytes(uint64(p.total)))
		return
	}
	ch := spinner[p.spinIdx%len(spinner)]
	p.spinIdx++
	fmt.Fprintf(p.w, "\r%s: [%c] %s downloaded", p.name, ch, humanize.Bytes(uint64(p.done)))
}

// UploadHook prints one line per object pushed to a bucket.
func UploadHook(w io.Writer) *config.ProgressHook {
	return &config.ProgressHook{
		OnStart: func(key string, total int64) {
			fmt.Fprintf(w, "   %s (%s)\n", key, humanize.Bytes(uint64(max(total, 0))))
		},
		OnProgress: func(key string, written, total int64) {
			if total <= 0 {
				return
			}
			fmt.Fprintf(w, "\r   uploading: %6.2f%%", float64(written)/float64(total)*100)
		},
		OnDone: func(key string, total int64, took time.Duration) {
			fmt.Fprintf(w, "\r   done in %s\n", took.Truncate(100*time.Millisecond))
		},
	}
}
