// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package crud

import (
	"context"
	"errors"
	"net/http"

	"github.com/xnat-tools/xnatio/sdk/config"
)

// Get returns the raw body at uri.
func (s *CrudService) Get(ctx context.Context, uri string, filters ...string) ([]byte, int, error) {
	return s.http.Do(ctx, http.MethodGet, s.http.BuildURL(uri, filters...), nil, "")
}

// Exists reports whether uri answers a GET with 2xx.
func (s *CrudService) Exists(ctx context.Context, uri string) (bool, error) {
	_, _, err := s.Get(ctx, uri)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, config.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}
