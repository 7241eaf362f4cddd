// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"sigs.k8s.io/yaml"

	"github.com/xnat-tools/xnatio/sdk/xnat"
)

var ErrAborted = errors.New("aborted by user")

func TranslateFormat(format string) string {
	switch strings.ToLower(format) {
	case "json":
		return FormatJSON
	case "yaml", "yml":
		return FormatYAML
	default:
		return FormatShort
	}
}

// PrintValue writes v as indented JSON or YAML. The short format falls back
// to JSON for values that are not row listings.
func PrintValue(w io.Writer, format string, v any) error {
	switch TranslateFormat(format) {
	case FormatYAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("yaml encoding failed: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("json encoding failed: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}
}

// PrintRows renders a listing. level picks the short-format columns; when it
// is unknown the first attributes of the first row are used.
func PrintRows(w io.Writer, format string, level xnat.Level, rows []xnat.Row) error {
	if TranslateFormat(format) != FormatShort {
		if rows == nil {
			rows = []xnat.Row{}
		}
		return PrintValue(w, format, rows)
	}

	cols := columnsFor(level, rows)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(cols, "\t")))
	for _, r := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = cellValue(r, c)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func columnsFor(level xnat.Level, rows []xnat.Row) []string {
	if cols, ok := ShortColumns[string(level)]; ok {
		return cols
	}
	if len(rows) == 0 {
		return []string{"ID"}
	}
	keys := make([]string, 0, len(rows[0]))
	for k := range rows[0] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if i := slices.Index(keys, "ID"); i > 0 {
		keys = append([]string{"ID"}, slices.Delete(keys, i, i+1)...)
	}
	if len(keys) > shortColumnLimit {
		keys = keys[:shortColumnLimit]
	}
	return keys
}

func cellValue(r xnat.Row, col string) string {
	switch col {
	case "Size", "file_size":
		if n, ok := r.Int64(col); ok && n >= 0 {
			return humanize.IBytes(uint64(n))
		}
	}
	if v := r.String(col); v != "" {
		return v
	}
	return "-"
}

// WaitForConfirmation asks msg on out until the answer on in is y or n.
// An empty answer counts as no.
func WaitForConfirmation(in io.Reader, out io.Writer, msg string) error {
	buf := bufio.NewReader(in)
	for {
		fmt.Fprint(out, msg)
		line, err := buf.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("error in reading user input: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return nil
		case "n", "no", "":
			return ErrAborted
		default:
			fmt.Fprintln(out, "Invalid input, must be y or n")
		}
	}
}
