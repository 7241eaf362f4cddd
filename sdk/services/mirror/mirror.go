// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package mirror

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

var ErrInvalidRequest = errors.New("invalid mirror request")

// Mirror uploads every file under req.Dir to req.Bucket, keyed by its path
// relative to Dir below req.Prefix. Objects already present with the same
// size are skipped unless req.Overwrite is set.
func (s *MirrorService) Mirror(ctx context.Context, req MirrorRequest) (*MirrorResult, error) {
	if req.Dir == "" || req.Bucket == "" {
		return nil, fmt.Errorf("%w: directory and bucket are required", ErrInvalidRequest)
	}
	prefix := strings.Trim(req.Prefix, "/")

	items, err := s.enumerate(req.Dir, prefix)
	if err != nil {
		return nil, err
	}

	existing := map[string]int64{}
	if !req.Overwrite {
		listPrefix := prefix
		if listPrefix != "" {
			listPrefix += "/"
		}
		if existing, err = s.store.ObjectSizes(ctx, req.Bucket, listPrefix); err != nil {
			return nil, err
		}
	}

	res := &MirrorResult{Bucket: req.Bucket, Uploaded: []Item{}, Skipped: []Item{}}
	for i, it := range items {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if size, ok := existing[it.Key]; ok && size == it.Size {
			s.log.Debug("object up to date, skipping", "key", it.Key)
			res.Skipped = append(res.Skipped, it)
			continue
		}

		s.log.Info("uploading", "file", it.LocalPath, "bucket", req.Bucket, "key", it.Key,
			"n", i+1, "of", len(items))
		if err := s.upload(ctx, req, it); err != nil {
			return res, err
		}
		res.Uploaded = append(res.Uploaded, it)
		res.TotalBytes += it.Size
	}
	return res, nil
}

func (s *MirrorService) enumerate(dir, prefix string) ([]Item, error) {
	var items []Item
	err := afero.Walk(s.fs, dir, func(p string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("walk error: %w", walkErr)
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return fmt.Errorf("relative path error: %w", err)
		}
		items = append(items, Item{
			LocalPath: p,
			Key:       path.Join(prefix, filepath.ToSlash(rel)),
			Size:      info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate local directory: %w", err)
	}
	return items, nil
}

func (s *MirrorService) upload(ctx context.Context, req MirrorRequest, it Item) error {
	f, err := s.fs.Open(it.LocalPath)
	if err != nil {
		return fmt.Errorf("open file error: %w", err)
	}
	defer f.Close()

	if err := s.store.PutObject(ctx, req.Bucket, it.Key, f, it.Size, req.Hook); err != nil {
		return fmt.Errorf("upload error (%s): %w", it.LocalPath, err)
	}
	return nil
}
