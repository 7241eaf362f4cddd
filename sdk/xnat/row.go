// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package xnat

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

var ErrNoResultSet = errors.New("response has no ResultSet envelope")

// Row is one entry of a ResultSet, attribute name to value.
type Row map[string]any

func (r Row) Has(attr string) bool {
	_, ok := r[attr]
	return ok
}

// String returns the attribute rendered as text, "" when absent.
func (r Row) String(attr string) string {
	v, ok := r[attr]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// Int64 parses the attribute as an integer.
func (r Row) Int64(attr string) (int64, bool) {
	s := r.String(attr)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Only keeps the listed attributes that are present in r.
func (r Row) Only(attrs []string) Row {
	out := make(Row, len(attrs))
	for _, a := range attrs {
		if v, ok := r[a]; ok {
			out[a] = v
		}
	}
	return out
}

type resultSet struct {
	ResultSet *struct {
		Result []Row `json:"Result"`
	} `json:"ResultSet"`
}

// DecodeResultSet decodes {"ResultSet":{"Result":[...]}}. Numbers are kept
// as json.Number so sizes survive untouched.
func DecodeResultSet(body []byte) ([]Row, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var rs resultSet
	if err := dec.Decode(&rs); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if rs.ResultSet == nil {
		return nil, ErrNoResultSet
	}
	if rs.ResultSet.Result == nil {
		return []Row{}, nil
	}
	return rs.ResultSet.Result, nil
}
