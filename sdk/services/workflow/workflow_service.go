// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"io"

	"github.com/spf13/afero"
)

// SeriesReader extracts the SeriesInstanceUID from a DICOM stream of size bytes.
type SeriesReader func(r io.Reader, size int64) (string, error)

type WorkflowService struct {
	fs     afero.Fs
	series SeriesReader
}

type Option func(*WorkflowService)

func WithSeriesReader(r SeriesReader) Option {
	return func(s *WorkflowService) { s.series = r }
}

func NewWorkflowService(fs afero.Fs, opts ...Option) *WorkflowService {
	s := &WorkflowService{fs: fs, series: dicomSeries}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Classify sorts the files under dir on fs using the DICOM header reader.
func Classify(fs afero.Fs, dir string) (*Result, error) {
	return NewWorkflowService(fs).Classify(dir)
}
