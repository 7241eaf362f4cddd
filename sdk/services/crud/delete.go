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

// Delete removes the resource at uri.
func (s *CrudService) Delete(ctx context.Context, uri string) error {
	if uri == "" {
		return errors.New("uri is required")
	}
	_, status, err := s.http.Do(ctx, http.MethodDelete, s.http.MakeURL(uri), nil, "")
	if err != nil {
		return fmt.Errorf("delete failed (status %d): %w", status, err)
	}
	return nil
}
