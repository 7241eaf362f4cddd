// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	ErrUnauthorized = errors.New("xnat: unauthorized")
	ErrNotFound     = errors.New("xnat: resource not found")
)

// Named query filters understood by BuildURL.
var namedFilters = map[string]string{
	"accessible":      "accessible=true",
	"imagingsessions": "xsiType=xnat:imageSessionData",
	"mrsessions":      "xsiType=xnat:mrSessionData",
	"petsessions":     "xsiType=xnat:petSessionData",
	"json":            "format=json",
	"zip":             "format=zip",
}

type CoreHTTP interface {
	Host() string
	User() string
	AuthHeader() string
	MakeURL(path string) string
	BuildURL(path string, filters ...string) string
	Do(ctx context.Context, method, url string, data []byte, contentType string) ([]byte, int, error)
	Stream(ctx context.Context, url string) (*http.Response, error)
}

type httpCore struct {
	httpClient *http.Client
	fallback   *http.Client
	coreConfig CoreConfig
	authHeader string
}

// NewHTTPCore builds the REST core for one host. No network call is made.
func NewHTTPCore(httpClient *http.Client, coreConfig CoreConfig) CoreHTTP {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	coreConfig = coreConfig.Normalized()
	coreConfig.Host = collapseSlashes(coreConfig.Host)

	// single retry path: a fresh transport without connection reuse
	fallback := &http.Client{
		Transport: &http.Transport{
			Proxy:             http.ProxyFromEnvironment,
			DisableKeepAlives: true,
		},
		Timeout: httpClient.Timeout,
	}

	return &httpCore{
		httpClient: httpClient,
		fallback:   fallback,
		coreConfig: coreConfig,
		authHeader: BasicAuthHeader(coreConfig.Username, coreConfig.Password),
	}
}

// BasicAuthHeader returns "Basic base64(user:password)".
func BasicAuthHeader(user, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+password))
}

func (httpCore *httpCore) Host() string       { return httpCore.coreConfig.Host }
func (httpCore *httpCore) User() string       { return httpCore.coreConfig.Username }
func (httpCore *httpCore) AuthHeader() string { return httpCore.authHeader }

func (httpCore *httpCore) MakeURL(path string) string {
	return MakeURL(httpCore.coreConfig.Host, path)
}

func (httpCore *httpCore) BuildURL(path string, filters ...string) string {
	return MakeURL(httpCore.coreConfig.Host, path) + QueryString(path, filters...)
}

// MakeURL turns a partial XNAT path into a full URL under host.
func MakeURL(host, path string) string {
	p := strings.TrimPrefix(path, "/")
	if !strings.HasPrefix(p, host) {
		if strings.HasPrefix(p, "data/") {
			p = host + "/data/" + strings.TrimPrefix(p, "data/")
		} else {
			p = host + "/data/archive/" + p
		}
	}
	return collapseSlashes(p)
}

// QueryString expands filters into "?a&b&c". When path already holds a query
// the result starts with "&".
func QueryString(path string, filters ...string) string {
	if len(filters) == 0 {
		return ""
	}
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		parts = append(parts, ExpandFilter(f))
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return sep + strings.Join(parts, "&")
}

func ExpandFilter(f string) string {
	if strings.Contains(f, "=") {
		return f
	}
	if v, ok := namedFilters[strings.ToLower(f)]; ok {
		return v
	}
	return f + "=true"
}

func collapseSlashes(u string) string {
	scheme, rest := "", u
	if i := strings.Index(u, "://"); i >= 0 {
		scheme, rest = u[:i+3], u[i+3:]
	}
	for strings.Contains(rest, "//") {
		rest = strings.ReplaceAll(rest, "//", "/")
	}
	return scheme + rest
}

func (httpCore *httpCore) newRequest(ctx context.Context, method, url string, data []byte, contentType string) (*http.Request, error) {
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Authorization", httpCore.authHeader)
	return req, nil
}

func (httpCore *httpCore) Do(ctx context.Context, method, url string, data []byte, contentType string) ([]byte, int, error) {
	req, err := httpCore.newRequest(ctx, method, url, data, contentType)
	if err != nil {
		return nil, 0, err
	}

	resp, err := httpCore.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	b, rerr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return b, resp.StatusCode, statusError(resp)
	}
	return b, resp.StatusCode, rerr
}

// Stream performs a GET and hands the open response to the caller, who must
// close the body. A transport error triggers exactly one fallback attempt.
func (httpCore *httpCore) Stream(ctx context.Context, url string) (*http.Response, error) {
	req, err := httpCore.newRequest(ctx, http.MethodGet, url, nil, "")
	if err != nil {
		return nil, err
	}

	resp, err := httpCore.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		req, rerr := httpCore.newRequest(ctx, http.MethodGet, url, nil, "")
		if rerr != nil {
			return nil, rerr
		}
		var ferr error
		resp, ferr = httpCore.fallback.Do(req)
		if ferr != nil {
			return nil, fmt.Errorf("%v; fallback request failed: %w", err, ferr)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, statusError(resp)
	}
	return resp, nil
}

func statusError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("xnat responded with: %s: %w", resp.Status, ErrUnauthorized)
	case http.StatusNotFound:
		return fmt.Errorf("xnat responded with: %s: %w", resp.Status, ErrNotFound)
	}
	return fmt.Errorf("xnat responded with: %s", resp.Status)
}
