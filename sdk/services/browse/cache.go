// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package browse

import (
	"strings"

	"github.com/xnat-tools/xnatio/sdk/xnat"
)

// Projects returns the last project listing.
func (s *BrowseService) Projects() []xnat.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]xnat.Row(nil), s.projects...)
}

// FileInfo returns the last seen attributes of a file by name.
func (s *BrowseService) FileInfo(name string) (xnat.Row, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.files[name]
	return r, ok
}

// FileSize is the cached byte size of a file, if a listing reported one.
func (s *BrowseService) FileSize(name string) (int64, bool) {
	r, ok := s.FileInfo(name)
	if !ok {
		return 0, false
	}
	return r.Int64("Size")
}

func (s *BrowseService) ResetCaches() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = nil
	s.files = map[string]xnat.Row{}
}

func (s *BrowseService) updateCaches(uri string, rows []xnat.Row) {
	// "projects" and "/projects" list the same folder
	uri = "/" + strings.TrimPrefix(uri, "/")

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case xnat.PathEndsWith(uri, string(xnat.Projects)):
		s.projects = append([]xnat.Row(nil), rows...)
	case xnat.PathEndsWith(uri, string(xnat.Files)):
		for _, r := range rows {
			if name := r.String("Name"); name != "" {
				s.files[name] = r
			}
		}
	}
}
