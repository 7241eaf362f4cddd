// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xnat-tools/xnatio/sdk/events"
	"github.com/xnat-tools/xnatio/sdk/xnat"
)

func TestTranslateFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, TranslateFormat("JSON"))
	assert.Equal(t, FormatYAML, TranslateFormat("yml"))
	assert.Equal(t, FormatShort, TranslateFormat(""))
	assert.Equal(t, FormatShort, TranslateFormat("table"))
}

func TestPrintRowsShort(t *testing.T) {
	rows := []xnat.Row{
		{"Name": "a.dcm", "Size": json.Number("2048"), "collection": "DICOM"},
		{"Name": "b.dcm"},
	}
	var buf bytes.Buffer
	require.NoError(t, PrintRows(&buf, "short", xnat.Files, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"NAME", "SIZE", "COLLECTION"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"a.dcm", "2.0", "KiB", "DICOM"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"b.dcm", "-", "-"}, strings.Fields(lines[2]))
}

func TestPrintRowsUnknownLevelUsesRowKeys(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintRows(&buf, "short", xnat.Level("other"), []xnat.Row{{"b": "2", "ID": "x", "a": "1"}}))
	assert.Equal(t, []string{"ID", "A", "B"}, strings.Fields(strings.Split(buf.String(), "\n")[0]))
}

func TestPrintRowsStructured(t *testing.T) {
	rows := []xnat.Row{{"ID": "P1"}}

	var js bytes.Buffer
	require.NoError(t, PrintRows(&js, "json", xnat.Projects, rows))
	var back []map[string]string
	require.NoError(t, json.Unmarshal(js.Bytes(), &back))
	assert.Equal(t, "P1", back[0]["ID"])

	var ym bytes.Buffer
	require.NoError(t, PrintRows(&ym, "yaml", xnat.Projects, rows))
	assert.Equal(t, "- ID: P1\n", ym.String())

	var empty bytes.Buffer
	require.NoError(t, PrintRows(&empty, "json", xnat.Projects, nil))
	assert.Equal(t, "[]\n", empty.String())
}

func TestWaitForConfirmation(t *testing.T) {
	var out bytes.Buffer
	assert.NoError(t, WaitForConfirmation(strings.NewReader("maybe\ny\n"), &out, "sure? "))
	assert.Contains(t, out.String(), "Invalid input")

	assert.ErrorIs(t, WaitForConfirmation(strings.NewReader("\n"), &out, "sure? "), ErrAborted)
	assert.Error(t, WaitForConfirmation(strings.NewReader(""), &out, "sure? "))
}

func TestProgressRendersDownloadEvents(t *testing.T) {
	var buf bytes.Buffer
	bus := events.NewBus()
	NewProgress(&buf, 0).Attach(bus)

	uri := "/experiments/E1/scans/1/files/img.dcm"
	bus.Fire(events.Event{Kind: events.DownloadStarted, URI: uri, Total: 2000})
	bus.Fire(events.Event{Kind: events.Downloading, URI: uri, Downloaded: 1000, Total: 2000})
	bus.Fire(events.Event{Kind: events.DownloadFinished, URI: uri})

	out := buf.String()
	assert.Contains(t, out, "img.dcm:  50.00% (1.0 kB / 2.0 kB)")
	assert.True(t, strings.HasSuffix(out, " done\n"))

	buf.Reset()
	bus.Fire(events.Event{Kind: events.DownloadStarted, URI: "/x/unknown.bin", Total: -1})
	bus.Fire(events.Event{Kind: events.DownloadFailed, URI: "/x/unknown.bin", Err: "boom"})
	assert.Contains(t, buf.String(), "downloaded")
	assert.True(t, strings.HasSuffix(buf.String(), " failed: boom\n"))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(&buf, "warn")
	require.NoError(t, err)
	log.Info("hidden")
	log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	_, err = NewLogger(&buf, "loud")
	assert.Error(t, err)
}
