// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

const (
	preambleSize = 128
	magic        = "DICM"
)

var errNoSeries = errors.New("no SeriesInstanceUID")

// Classify walks dir. Scenes are .mrb/.mrml files. An .hdr with a sibling
// .img of the same stem is an Analyze volume. Files with the Part 10 magic
// and a readable SeriesInstanceUID are DICOM. Everything else is Misc.
func (s *WorkflowService) Classify(dir string) (*Result, error) {
	res := &Result{DICOM: map[string][]string{}}
	var files []string

	err := afero.Walk(s.fs, dir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("walk error: %w", walkErr)
		}
		if !info.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %s: %w", dir, err)
	}

	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f] = true
	}

	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f))
		switch ext {
		case ".mrb", ".mrml":
			res.Scenes = append(res.Scenes, f)
			continue
		case ".hdr":
			if img := sibling(f, ".img", present); img != "" {
				res.Analyze = append(res.Analyze, AnalyzePair{Header: f, Image: img})
				continue
			}
		case ".img":
			if sibling(f, ".hdr", present) != "" {
				continue
			}
		}

		if uid, ok := s.seriesOf(f); ok {
			res.DICOM[uid] = append(res.DICOM[uid], f)
			continue
		}
		res.Misc = append(res.Misc, f)
	}
	return res, nil
}

// sibling finds the file sharing path's stem with extension ext, in either case.
func sibling(path, ext string, present map[string]bool) string {
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	for _, cand := range []string{stem + ext, stem + strings.ToUpper(ext)} {
		if present[cand] {
			return cand
		}
	}
	return ""
}

func (s *WorkflowService) seriesOf(path string) (string, bool) {
	f, err := s.fs.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.Size() < preambleSize+int64(len(magic)) {
		return "", false
	}
	head := make([]byte, preambleSize+len(magic))
	if _, err := io.ReadFull(f, head); err != nil || !bytes.Equal(head[preambleSize:], []byte(magic)) {
		return "", false
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", false
	}

	uid, err := s.series(f, info.Size())
	if err != nil || uid == "" {
		return "", false
	}
	return uid, true
}

func dicomSeries(r io.Reader, size int64) (string, error) {
	ds, err := dicom.Parse(r, size, nil, dicom.SkipPixelData())
	if err != nil {
		return "", err
	}
	el, err := ds.FindElementByTag(tag.SeriesInstanceUID)
	if err != nil {
		return "", err
	}
	uids, ok := el.Value.GetValue().([]string)
	if !ok || len(uids) == 0 {
		return "", errNoSeries
	}
	return strings.TrimSpace(uids[0]), nil
}
