// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package crud

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// CreateFolder PUTs an empty body at uri, which makes XNAT create the
// project/subject/experiment/resource it names.
func (s *CrudService) CreateFolder(ctx context.Context, uri string) error {
	if uri == "" {
		return errors.New("uri is required")
	}
	_, status, err := s.http.Do(ctx, http.MethodPut, s.http.MakeURL(uri), nil, "")
	if err != nil {
		return fmt.Errorf("create failed (status %d): %w", status, err)
	}
	return nil
}
