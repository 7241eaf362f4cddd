// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xnat-tools/xnatio/sdk/events"
	"github.com/xnat-tools/xnatio/sdk/xnat"
)

// DownloadFile fetches src into dst outside of the queue. Cancelling ctx
// stops the transfer before the next chunk.
func (s *TransferService) DownloadFile(ctx context.Context, src, dst string) error {
	err := s.download(ctx, src, dst, nil)
	if errors.Is(err, ErrCancelled) {
		s.cancelled(Entry{Source: src, Destination: dst})
	}
	return err
}

// download streams src into dst in fixed-size chunks. alive, when set, is
// polled before every chunk; a false answer aborts like a cancelled ctx.
func (s *TransferService) download(ctx context.Context, src, dst string, alive func() bool) error {
	stopped := func() bool {
		return ctx.Err() != nil || (alive != nil && !alive())
	}
	if stopped() {
		return ErrCancelled
	}

	if err := s.prepareDestination(dst); err != nil {
		return s.failed(src, dst, err)
	}

	url := s.http.MakeURL(src)
	s.log.Info("downloading", slog.String("url", url), slog.String("dst", dst))

	resp, err := s.http.Stream(ctx, url)
	if err != nil {
		if stopped() {
			return ErrCancelled
		}
		return s.failed(src, dst, err)
	}
	defer resp.Body.Close()

	total := s.totalSize(src, resp.ContentLength)
	s.bus.Fire(events.Event{
		Kind:        events.DownloadStarted,
		URI:         src,
		Destination: dst,
		Total:       total,
	})

	out, err := s.fs.Create(dst)
	if err != nil {
		return s.failed(src, dst, fmt.Errorf("failed to create local file: %w", err))
	}

	buf := make([]byte, s.chunk)
	var downloaded int64
	for {
		if stopped() {
			_ = out.Close()
			s.discard(dst)
			return ErrCancelled
		}

		n, readErr := resp.Body.Read(buf)
		// a Cancel may land while Read blocks; no progress after it
		if stopped() {
			_ = out.Close()
			s.discard(dst)
			return ErrCancelled
		}
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				_ = out.Close()
				s.discard(dst)
				return s.failed(src, dst, fmt.Errorf("failed to write to local file: %w", werr))
			}
			downloaded += int64(n)
			s.bus.Fire(events.Event{
				Kind:        events.Downloading,
				URI:         src,
				Destination: dst,
				Downloaded:  downloaded,
				Total:       total,
			})
		}
		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			_ = out.Close()
			s.discard(dst)
			if stopped() {
				return ErrCancelled
			}
			return s.failed(src, dst, readErr)
		}
	}

	if err := out.Close(); err != nil {
		s.discard(dst)
		return s.failed(src, dst, fmt.Errorf("failed to close local file: %w", err))
	}

	s.bus.Fire(events.Event{
		Kind:        events.DownloadFinished,
		URI:         src,
		Destination: dst,
		Downloaded:  downloaded,
		Total:       total,
	})
	return nil
}

// totalSize prefers a size from an earlier file listing, then Content-Length.
func (s *TransferService) totalSize(src string, contentLength int64) int64 {
	if s.sizes != nil {
		if n, ok := s.sizes.FileSize(xnat.BaseName(src)); ok {
			return n
		}
	}
	if contentLength >= 0 {
		return contentLength
	}
	return -1
}

// prepareDestination removes an existing file at dst and creates its parent.
func (s *TransferService) prepareDestination(dst string) error {
	if err := s.fs.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove existing file: %w", err)
	}
	if dir := filepath.Dir(dst); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create local directory: %w", err)
		}
	}
	return nil
}

func (s *TransferService) discard(dst string) {
	if err := s.fs.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Warn("could not remove partial file", slog.String("dst", dst), slog.Any("error", err))
	}
}

func (s *TransferService) failed(src, dst string, err error) error {
	s.log.Error("download failed", slog.String("src", src), slog.Any("error", err))
	s.bus.Fire(events.Event{
		Kind:        events.DownloadFailed,
		URI:         src,
		Destination: dst,
		Err:         err.Error(),
	})
	return fmt.Errorf("download of %s failed: %w", src, err)
}
