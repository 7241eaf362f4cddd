// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Unpack extracts the zip archive at archive into dir and returns the
// extracted file paths. Entries escaping dir are rejected.
func (s *WorkflowService) Unpack(archive, dir string) ([]string, error) {
	f, err := s.fs.Open(archive)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat archive: %w", err)
	}
	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to read archive %s: %w", archive, err)
	}

	root := filepath.Clean(dir)
	var out []string
	for _, zf := range zr.File {
		target := filepath.Join(root, filepath.FromSlash(zf.Name))
		if target != root && !strings.HasPrefix(target, root+string(filepath.Separator)) {
			return out, fmt.Errorf("archive entry %q escapes %s", zf.Name, dir)
		}
		if zf.FileInfo().IsDir() {
			if err := s.fs.MkdirAll(target, 0o755); err != nil {
				return out, err
			}
			continue
		}
		if err := s.extract(zf, target); err != nil {
			return out, err
		}
		out = append(out, target)
	}
	return out, nil
}

func (s *WorkflowService) extract(zf *zip.File, target string) error {
	if err := s.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	src, err := zf.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s in archive: %w", zf.Name, err)
	}
	defer src.Close()

	dst, err := s.fs.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("failed to extract %s: %w", zf.Name, err)
	}
	return dst.Close()
}
