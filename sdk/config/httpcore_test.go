// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const host = "https://xnat.example.org"

func TestMakeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"archive path", "/projects", host + "/data/archive/projects"},
		{"no leading slash", "projects/P1", host + "/data/archive/projects/P1"},
		{"data path", "/data/experiments", host + "/data/experiments"},
		{"full url", host + "/data/archive/projects", host + "/data/archive/projects"},
		{"double slashes", "/projects//P1///subjects", host + "/data/archive/projects/P1/subjects"},
		{"empty", "", host + "/data/archive/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MakeURL(host, tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, MakeURL(host, got), "not idempotent")
		})
	}
}

func TestMakeURLIdempotentOnOddInput(t *testing.T) {
	for _, in := range []string{"//x", "http://other.org//a", "data//", "?q=1", "/projects?x=a//b"} {
		once := MakeURL(host, in)
		assert.Equal(t, once, MakeURL(host, once), in)
	}
}

func TestQueryString(t *testing.T) {
	filters := []string{"accessible", "imagingsessions", "label=*abc*", "custom"}
	qs := QueryString("/projects", filters...)

	assert.Equal(t, "?accessible=true&xsiType=xnat:imageSessionData&label=*abc*&custom=true", qs)
	assert.Equal(t, 1, strings.Count(qs, "?"))
	assert.Equal(t, len(filters)-1, strings.Count(qs, "&"))

	assert.Equal(t, "", QueryString("/projects"))
	assert.Equal(t, "&format=json", QueryString("/x?a=1", "json"))
}

func TestBuildURL(t *testing.T) {
	core := NewHTTPCore(nil, CoreConfig{Host: host + "/", Username: "alice", Password: "secret"})
	assert.Equal(t, host+"/data/archive/projects?accessible=true", core.BuildURL("/projects", "accessible"))
	assert.Equal(t, host, core.Host())
}

func TestBasicAuthHeader(t *testing.T) {
	assert.Equal(t, "Basic YWxpY2U6c2VjcmV0", BasicAuthHeader("alice", "secret"))
}

func TestDoAttachesAuthAndMapsStatus(t *testing.T) {
	var gotAuth, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		switch r.URL.Path {
		case "/data/archive/missing":
			w.WriteHeader(http.StatusNotFound)
		case "/data/archive/locked":
			w.WriteHeader(http.StatusUnauthorized)
		default:
			_, _ = w.Write([]byte("ok"))
		}
	}))
	defer srv.Close()

	core := NewHTTPCore(srv.Client(), CoreConfig{Host: srv.URL, Username: "alice", Password: "secret"})
	ctx := context.Background()

	b, status, err := core.Do(ctx, http.MethodPut, core.MakeURL("/projects/P1"), []byte("x"), "application/octet-stream")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", string(b))
	assert.Equal(t, "Basic YWxpY2U6c2VjcmV0", gotAuth)
	assert.Equal(t, "application/octet-stream", gotType)

	_, _, err = core.Do(ctx, http.MethodGet, core.MakeURL("/missing"), nil, "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = core.Do(ctx, http.MethodGet, core.MakeURL("/locked"), nil, "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestStreamFallsBackOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("payload"))
	}))
	defer srv.Close()

	failing := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, assert.AnError
	})}
	core := NewHTTPCore(failing, CoreConfig{Host: srv.URL})

	resp, err := core.Stream(context.Background(), core.MakeURL("/x"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStreamAccumulatesErrors(t *testing.T) {
	failing := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, assert.AnError
	})}
	// nothing listens on this port
	core := NewHTTPCore(failing, CoreConfig{Host: "http://127.0.0.1:1"})

	_, err := core.Stream(context.Background(), core.MakeURL("/x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), assert.AnError.Error())
	assert.Contains(t, err.Error(), "fallback request failed")
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
