// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/xnat-tools/xnatio/sdk/events"
)

// Entry is one pending download. Source may repeat, ID never does.
type Entry struct {
	ID          string `json:"id"          yaml:"id"`
	Source      string `json:"source"      yaml:"source"`
	Destination string `json:"destination" yaml:"destination"`
}

// Queue is a FIFO of pending downloads.
type Queue struct {
	mu      sync.Mutex
	entries []Entry
}

func (q *Queue) push(src, dst string) Entry {
	q.mu.Lock()
	defer q.mu.Unlock()
	e := Entry{ID: uuid.NewString(), Source: src, Destination: dst}
	q.entries = append(q.entries, e)
	return e
}

func (q *Queue) head() (Entry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.entries) == 0 {
		return Entry{}, false
	}
	return q.entries[0], true
}

func (q *Queue) contains(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, e := range q.entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

func (q *Queue) remove(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, e := range q.entries {
		if e.ID == id {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (q *Queue) removeSource(src string) []Entry {
	q.mu.Lock()
	defer q.mu.Unlock()
	var removed []Entry
	kept := q.entries[:0]
	for _, e := range q.entries {
		if e.Source == src {
			removed = append(removed, e)
			continue
		}
		kept = append(kept, e)
	}
	q.entries = kept
	return removed
}

func (q *Queue) snapshot() []Entry {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Entry(nil), q.entries...)
}

func (q *Queue) clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = nil
}

// Enqueue appends a download and returns its entry id.
func (s *TransferService) Enqueue(src, dst string) string {
	return s.queue.push(src, dst).ID
}

// Cancel removes every pending entry for src and fires DownloadCancelled for
// each. An entry being transferred stops before its next chunk.
func (s *TransferService) Cancel(src string) int {
	removed := s.queue.removeSource(src)
	for _, e := range removed {
		s.cancelled(e)
	}
	return len(removed)
}

func (s *TransferService) ClearQueue() {
	s.queue.clear()
}

// Pending lists queued entries, head first.
func (s *TransferService) Pending() []Entry {
	return s.queue.snapshot()
}

// StartQueue drains the queue one entry at a time until it is empty. Entries
// without a destination are dropped. Per-entry outcomes are reported through
// events; the returned error is only about the drain itself.
func (s *TransferService) StartQueue(ctx context.Context, onStart, onFinish func()) error {
	if !s.draining.CompareAndSwap(false, true) {
		return ErrQueueRunning
	}
	defer s.draining.Store(false)

	if onStart != nil {
		onStart()
	}

	for {
		e, ok := s.queue.head()
		if !ok {
			break
		}
		if e.Destination == "" {
			s.queue.remove(e.ID)
			continue
		}

		id := e.ID
		err := s.download(ctx, e.Source, e.Destination, func() bool { return s.queue.contains(id) })

		// still queued means nobody called Cancel: the context stopped us
		if s.queue.remove(id) && errors.Is(err, ErrCancelled) {
			s.cancelled(e)
		}
		if err != nil {
			s.log.Debug("queue entry done with error", slog.String("src", e.Source), slog.Any("error", err))
		}
	}

	if onFinish != nil {
		onFinish()
	}
	return ctx.Err()
}

func (s *TransferService) cancelled(e Entry) {
	s.log.Info("download cancelled", slog.String("src", e.Source))
	s.bus.Fire(events.Event{
		Kind:        events.DownloadCancelled,
		URI:         e.Source,
		Destination: e.Destination,
	})
}
