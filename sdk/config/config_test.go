// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		conf Config
		ok   bool
	}{
		{"https host", Config{Core: CoreConfig{Host: "https://xnat.example.org/"}}, true},
		{"http host with port", Config{Core: CoreConfig{Host: "http://localhost:8080"}}, true},
		{"empty host", Config{}, false},
		{"no scheme", Config{Core: CoreConfig{Host: "xnat.example.org"}}, false},
		{"ftp scheme", Config{Core: CoreConfig{Host: "ftp://xnat.example.org"}}, false},
		{"negative timeout", Config{
			Core:     CoreConfig{Host: "https://xnat.example.org"},
			Transfer: TransferConfig{Timeout: -time.Second},
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.conf.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestTransferChunk(t *testing.T) {
	assert.Equal(t, DefaultChunkSize, TransferConfig{}.Chunk())
	assert.Equal(t, 512, TransferConfig{ChunkSize: 512}.Chunk())
}
