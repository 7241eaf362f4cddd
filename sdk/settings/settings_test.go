// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "none.ini"))
	require.NoError(t, err)
	assert.NotNil(t, s.Hosts())
	assert.Empty(t, s.Hosts())
	_, ok := s.Default()
	assert.False(t, ok)
}

func TestPutHostSaveReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", IniName)
	s, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, s.PutHost(Host{Name: "central", URL: "https://central.xnat.org/", Username: "alice", Default: true}))
	require.NoError(t, s.PutHost(Host{Name: "local", URL: "http://localhost:8080", Username: "admin"}))
	require.NoError(t, s.Save())

	re, err := Load(path)
	require.NoError(t, err)
	hosts := re.Hosts()
	require.Len(t, hosts, 2)
	assert.Equal(t, Host{Name: "central", URL: "https://central.xnat.org", Username: "alice", Default: true}, hosts[0])

	def, ok := re.Default()
	require.True(t, ok)
	assert.Equal(t, "central", def.Name)
}

func TestSetDefaultIsExclusive(t *testing.T) {
	s, _ := Load(filepath.Join(t.TempDir(), "x.ini"))
	require.NoError(t, s.PutHost(Host{Name: "a", URL: "https://a", Default: true}))
	require.NoError(t, s.PutHost(Host{Name: "b", URL: "https://b", Default: true}))

	a, _ := s.Host("a")
	b, _ := s.Host("b")
	assert.False(t, a.Default)
	assert.True(t, b.Default)

	assert.ErrorIs(t, s.SetDefault("c"), ErrUnknownHost)
}

func TestPutHostValidation(t *testing.T) {
	s, _ := Load(filepath.Join(t.TempDir(), "x.ini"))
	assert.Error(t, s.PutHost(Host{URL: "https://a"}))
	assert.Error(t, s.PutHost(Host{Name: "DEFAULT", URL: "https://a"}))
	assert.Error(t, s.PutHost(Host{Name: "a"}))
}

func TestRemoveHost(t *testing.T) {
	s, _ := Load(filepath.Join(t.TempDir(), "x.ini"))
	require.NoError(t, s.PutHost(Host{Name: "a", URL: "https://a"}))
	assert.True(t, s.RemoveHost("a"))
	assert.False(t, s.RemoveHost("a"))
	assert.Empty(t, s.Hosts())
}

func TestViperEnvOverridesIni(t *testing.T) {
	s, _ := Load(filepath.Join(t.TempDir(), "x.ini"))
	require.NoError(t, s.PutHost(Host{Name: "a", URL: "https://a.example.org", Username: "alice", Default: true}))

	t.Setenv("XNAT_USER", "bob")
	t.Setenv("XNAT_PASSWORD", "pw")

	v, err := s.Viper("")
	require.NoError(t, err)
	assert.Equal(t, "https://a.example.org", v.GetString(KeyHost))
	assert.Equal(t, "bob", v.GetString(KeyUser))
	assert.Equal(t, "pw", v.GetString(KeyPassword))
	assert.Equal(t, "info", v.GetString(KeyLogLevel))

	_, err = s.Viper("missing")
	assert.ErrorIs(t, err, ErrUnknownHost)
}
