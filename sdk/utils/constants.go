// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

const (
	FormatShort = "short"
	FormatJSON  = "json"
	FormatYAML  = "yaml"

	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	// columns printed by the short format when rows carry them
	shortColumnLimit = 4
)

// ShortColumns lists, per listing level, the attributes shown in short output.
var ShortColumns = map[string][]string{
	"projects":    {"ID", "name", "pi_lastname"},
	"subjects":    {"ID", "label", "project"},
	"experiments": {"ID", "label", "xsiType", "date"},
	"scans":       {"ID", "type", "series_description"},
	"resources":   {"label", "file_count", "file_size"},
	"files":       {"Name", "Size", "collection"},
	"hosts":       {"name", "url", "username", "default"},
}
