// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package browse

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/xnat-tools/xnatio/sdk/xnat"
)

// Search issues one wildcard query per (level, attribute) pair and unions
// the rows per level. Records matching on several attributes appear once
// per match. The caches are left untouched.
func (s *BrowseService) Search(ctx context.Context, term string) (map[xnat.Level][]xnat.Row, error) {
	if term == "" {
		return nil, errors.New("search term is required")
	}

	out := map[xnat.Level][]xnat.Row{}
	var lastErr error
	calls, failed := 0, 0

	for _, level := range xnat.SearchLevels {
		out[level] = []xnat.Row{}
		for _, attr := range xnat.Searchable[level] {
			filters := []string{attr + "=*" + url.QueryEscape(term) + "*"}
			if level == xnat.Experiments {
				filters = append(filters, xnat.ImagingSessionFilter)
			}

			calls++
			rows, err := s.fetch(ctx, "/"+string(level), filters)
			if err != nil {
				failed++
				lastErr = err
				continue
			}
			out[level] = append(out[level], rows...)
		}
	}

	if failed == calls {
		return nil, fmt.Errorf("%w: %w", ErrListingFailed, lastErr)
	}
	return out, nil
}
