// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package browse

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/xnat-tools/xnatio/sdk/events"
	"github.com/xnat-tools/xnatio/sdk/xnat"
)

// ListFolder GETs every URI of req and concatenates the rows. A failed call
// contributes no rows; only when every call fails is ErrListingFailed returned.
func (s *BrowseService) ListFolder(ctx context.Context, req ListRequest) ([]xnat.Row, error) {
	out := []xnat.Row{}
	var lastErr error
	failed := 0

	for _, uri := range req.URIs {
		rows, err := s.fetch(ctx, uri, req.Filters)
		if err != nil {
			failed++
			lastErr = err
			continue
		}
		s.updateCaches(uri, rows)

		for _, r := range rows {
			if len(req.Attributes) > 0 {
				r = r.Only(req.Attributes)
			}
			out = append(out, r)
		}
	}

	if len(req.URIs) > 0 && failed == len(req.URIs) {
		return nil, fmt.Errorf("%w: %w", ErrListingFailed, lastErr)
	}
	return out, nil
}

// fetch performs one GET and decodes the ResultSet. Transport errors and
// undecodable bodies are reported as a JSONError event.
func (s *BrowseService) fetch(ctx context.Context, uri string, filters []string) ([]xnat.Row, error) {
	url := s.http.BuildURL(uri, filters...)
	s.log.Debug("listing", slog.String("url", url))

	body, _, err := s.http.Do(ctx, http.MethodGet, url, nil, "")
	if err != nil {
		s.log.Warn("listing request failed", slog.String("url", url), slog.Any("error", err))
		s.jsonError(body, err)
		return nil, err
	}

	rows, err := xnat.DecodeResultSet(body)
	if err != nil {
		s.log.Warn("listing returned no json", slog.String("url", url), slog.Any("error", err))
		s.jsonError(body, err)
		return nil, err
	}
	return rows, nil
}

func (s *BrowseService) jsonError(body []byte, err error) {
	s.bus.Fire(events.Event{
		Kind: events.JSONError,
		Host: s.http.Host(),
		User: s.http.User(),
		Body: body,
		Err:  err.Error(),
	})
}
