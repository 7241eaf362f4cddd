// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package mirror

import "github.com/xnat-tools/xnatio/sdk/config"

type MirrorRequest struct {
	Dir    string
	Bucket string
	Prefix string
	// Overwrite uploads files even when an object of the same size exists.
	Overwrite bool
	Hook      *config.ProgressHook
}

type Item struct {
	LocalPath string `json:"local_path"`
	Key       string `json:"key"`
	Size      int64  `json:"size"`
}

type MirrorResult struct {
	Bucket     string `json:"bucket"`
	Uploaded   []Item `json:"uploaded"`
	Skipped    []Item `json:"skipped"`
	TotalBytes int64  `json:"total_bytes"`
}
