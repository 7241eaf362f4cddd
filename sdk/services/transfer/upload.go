// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/spf13/afero"

	"github.com/xnat-tools/xnatio/sdk/config"
)

// UploadFile PUTs the whole content of localPath to remoteURI. With
// deleteExisting the remote file is DELETEd first; a missing one is fine.
func (s *TransferService) UploadFile(ctx context.Context, localPath, remoteURI string, deleteExisting bool) error {
	data, err := afero.ReadFile(s.fs, localPath)
	if err != nil {
		return fmt.Errorf("failed to read local file: %w", err)
	}

	url := s.http.MakeURL(remoteURI)

	if deleteExisting {
		_, status, err := s.http.Do(ctx, http.MethodDelete, url, nil, "")
		if err != nil && !errors.Is(err, config.ErrNotFound) {
			s.log.Warn("delete before upload failed", slog.String("url", url), slog.Int("status", status), slog.Any("error", err))
		}
	}

	// raw bodies need inbody=true, otherwise XNAT expects multipart
	if !strings.Contains(url, "inbody=") {
		url += config.QueryString(url, "inbody=true")
	}

	s.log.Info("uploading", slog.String("src", localPath), slog.String("url", url), slog.Int("bytes", len(data)))
	if data == nil {
		data = []byte{}
	}
	_, status, err := s.http.Do(ctx, http.MethodPut, url, data, "application/octet-stream")
	if err != nil {
		return fmt.Errorf("upload failed (status %d): %w", status, err)
	}
	return nil
}
