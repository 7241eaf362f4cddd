// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// NewLogger builds a text logger writing to w at the named level.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	lo := &slog.HandlerOptions{}
	switch strings.ToLower(level) {
	case LogLevelDebug:
		lo.Level = slog.LevelDebug
	case LogLevelInfo, "":
		lo.Level = slog.LevelInfo
	case LogLevelWarn, "warning":
		lo.Level = slog.LevelWarn
	case LogLevelError:
		lo.Level = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, lo)), nil
}
