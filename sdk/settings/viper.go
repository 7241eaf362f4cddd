// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Viper keys resolved by Viper(); env vars are XNAT_<KEY>.
const (
	KeyHost       = "host"
	KeyUser       = "user"
	KeyPassword   = "password"
	KeyLogLevel   = "log_level"
	KeyBucket     = "s3_bucket"
	KeyS3Region   = "aws_region"
	KeyS3Endpoint = "aws_endpoint_url"
)

const EnvPrefix = "XNAT"

// Viper returns a viper instance seeded with the named host (or the default
// host when name is empty). Environment variables override the ini values.
func (s *Store) Viper(name string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range []string{KeyHost, KeyUser, KeyPassword, KeyLogLevel, KeyBucket} {
		if err := v.BindEnv(k); err != nil {
			return nil, err
		}
	}
	// aws keys keep their usual names
	_ = v.BindEnv(KeyS3Region, "AWS_REGION")
	_ = v.BindEnv(KeyS3Endpoint, "AWS_ENDPOINT_URL")
	v.SetDefault(KeyLogLevel, "info")

	var h Host
	var ok bool
	if name != "" {
		if h, ok = s.Host(name); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownHost, name)
		}
	} else {
		h, ok = s.Default()
	}
	if !ok {
		return v, nil
	}

	// ini values go in as an in-memory toml document so env still wins on Get
	var buf bytes.Buffer
	for k, val := range map[string]string{KeyHost: h.URL, KeyUser: h.Username} {
		safe := strings.ReplaceAll(strings.ReplaceAll(val, `\`, `\\`), `"`, `\"`)
		_, _ = fmt.Fprintf(&buf, "%s = \"%s\"\n", k, safe)
	}
	v.SetConfigType("toml")
	if err := v.ReadConfig(&buf); err != nil {
		return nil, fmt.Errorf("failed to load settings into viper: %w", err)
	}
	return v, nil
}
