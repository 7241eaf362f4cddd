// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

var ErrInvalidConfig = errors.New("invalid core config")

// Config passed to the SDK. Loading it from flags/env/ini is the caller's job.
type Config struct {
	Core     CoreConfig
	S3       S3Config
	Transfer TransferConfig
}

// CoreConfig is the connection context of one XNAT host.
type CoreConfig struct {
	Host     string
	Username string
	Password string
}

// Normalized returns the config with the trailing slash removed from Host.
func (c CoreConfig) Normalized() CoreConfig {
	c.Host = strings.TrimRight(strings.TrimSpace(c.Host), "/")
	return c
}

// Validate checks that the core host is an absolute http(s) URL.
func (c Config) Validate() error {
	host := c.Core.Normalized().Host
	if host == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidConfig)
	}
	u, err := url.Parse(host)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: host %q is not an http(s) url", ErrInvalidConfig, host)
	}
	if c.Transfer.ChunkSize < 0 || c.Transfer.Timeout < 0 {
		return fmt.Errorf("%w: negative transfer settings", ErrInvalidConfig)
	}
	return nil
}

type S3Config struct {
	AccessKey   string
	SecretKey   string
	AccessToken string
	Region      string
	EndpointURL string
}

type TransferConfig struct {
	// ChunkSize of each buffered read during downloads. 0 means DefaultChunkSize.
	ChunkSize int
	// Timeout for a single HTTP call. 0 keeps the http.Client default (none).
	Timeout time.Duration
}

const DefaultChunkSize = 8 * 1024

func (t TransferConfig) Chunk() int {
	if t.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return t.ChunkSize
}
