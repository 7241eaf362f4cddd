// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package events

import "sync"

type Kind int

const (
	DownloadStarted Kind = iota
	Downloading
	DownloadFinished
	DownloadFailed
	DownloadCancelled
	JSONError
)

var kindNames = map[Kind]string{
	DownloadStarted:   "downloadStarted",
	Downloading:       "downloading",
	DownloadFinished:  "downloadFinished",
	DownloadFailed:    "downloadFailed",
	DownloadCancelled: "downloadCancelled",
	JSONError:         "jsonError",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Event carries the fields relevant to its Kind; the rest stay zero.
type Event struct {
	Kind        Kind
	URI         string
	Destination string
	Downloaded  int64
	// Total is -1 when the size is unknown.
	Total int64
	Err   string

	// JSONError only
	Host string
	User string
	Body []byte
}

type Handler func(Event)

// Bus is a fire-and-forget observer list keyed by Kind.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Kind][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: map[Kind][]Handler{}}
}

func (b *Bus) Subscribe(kind Kind, h Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[kind] = append(b.handlers[kind], h)
}

// Fire calls every handler registered for ev.Kind, in registration order.
func (b *Bus) Fire(ev Event) {
	b.mu.RLock()
	hs := append([]Handler(nil), b.handlers[ev.Kind]...)
	b.mu.RUnlock()

	for _, h := range hs {
		h(ev)
	}
}

func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = map[Kind][]Handler{}
}
