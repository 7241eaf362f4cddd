// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package workflow

// AnalyzePair is an Analyze 7.5 volume: header plus image file.
type AnalyzePair struct {
	Header string `json:"header"`
	Image  string `json:"image"`
}

// Result groups the files of a downloaded tree by how they should be loaded.
// Paths are as found while walking, in lexical order.
type Result struct {
	Scenes  []string            `json:"scenes"`
	Analyze []AnalyzePair       `json:"analyze"`
	DICOM   map[string][]string `json:"dicom"` // SeriesInstanceUID -> files
	Misc    []string            `json:"misc"`
}

func (r *Result) Empty() bool {
	return len(r.Scenes) == 0 && len(r.Analyze) == 0 && len(r.DICOM) == 0 && len(r.Misc) == 0
}
