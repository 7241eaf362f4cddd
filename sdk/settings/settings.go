// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

// Package settings persists the known XNAT hosts in an ini file, one section
// per host. Passwords are never written.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/ini.v1"
)

const (
	IniName = ".xnatio.ini"

	keyURL      = "url"
	keyUsername = "username"
	keyDefault  = "default"
)

var ErrUnknownHost = errors.New("unknown host")

type Host struct {
	Name     string `json:"name"     yaml:"name"`
	URL      string `json:"url"      yaml:"url"`
	Username string `json:"username" yaml:"username"`
	Default  bool   `json:"default"  yaml:"default"`
}

type Store struct {
	path string
	file *ini.File
}

// DefaultPath is ~/.xnatio.ini, or ./.xnatio.ini without a home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, IniName)
}

// Load reads path; a missing file yields an empty store.
func Load(path string) (*Store, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return &Store{path: path, file: ini.Empty()}, nil
	}
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ini file: %w", err)
	}
	return &Store{path: path, file: f}, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) Hosts() []Host {
	out := []Host{}
	for _, sec := range s.file.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		out = append(out, hostFrom(sec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *Store) Host(name string) (Host, bool) {
	if name == "" || name == ini.DefaultSection || !s.file.HasSection(name) {
		return Host{}, false
	}
	return hostFrom(s.file.Section(name)), true
}

// PutHost adds or replaces a host. A host marked Default clears the flag on
// every other host.
func (s *Store) PutHost(h Host) error {
	h.Name = strings.TrimSpace(h.Name)
	if h.Name == "" || h.Name == ini.DefaultSection {
		return errors.New("host name is required")
	}
	if h.URL == "" {
		return errors.New("host url is required")
	}

	sec := s.file.Section(h.Name)
	sec.Key(keyURL).SetValue(strings.TrimRight(h.URL, "/"))
	sec.Key(keyUsername).SetValue(h.Username)
	sec.Key(keyDefault).SetValue("false")
	if h.Default {
		return s.SetDefault(h.Name)
	}
	return nil
}

func (s *Store) RemoveHost(name string) bool {
	if _, ok := s.Host(name); !ok {
		return false
	}
	s.file.DeleteSection(name)
	return true
}

// SetDefault makes name the only default host.
func (s *Store) SetDefault(name string) error {
	if _, ok := s.Host(name); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownHost, name)
	}
	for _, sec := range s.file.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		sec.Key(keyDefault).SetValue(fmt.Sprint(sec.Name() == name))
	}
	return nil
}

func (s *Store) Default() (Host, bool) {
	for _, h := range s.Hosts() {
		if h.Default {
			return h, true
		}
	}
	return Host{}, false
}

func (s *Store) Save() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create settings directory: %w", err)
		}
	}
	if err := s.file.SaveTo(s.path); err != nil {
		return fmt.Errorf("failed to update ini file: %w", err)
	}
	return nil
}

func hostFrom(sec *ini.Section) Host {
	return Host{
		Name:     sec.Name(),
		URL:      sec.Key(keyURL).String(),
		Username: sec.Key(keyUsername).String(),
		Default:  sec.Key(keyDefault).MustBool(false),
	}
}
