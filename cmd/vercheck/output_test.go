package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rodrigopv/vercheck/internal/store"
)

func sampleRecord() *store.VersionRecord {
	return &store.VersionRecord{
		LocalVersion: "9.0.0",
		StoreVersion: "9.2.1",
		StoreURL:     "https://play.google.com/store/apps/details?hl=en&id=com.example.app",
		Platform:     store.Android,
	}
}

// captureStdout redirects os.Stdout around fn. Not parallel-safe, so the
// printRecord tests stay sequential.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fnErr := fn()
	require.NoError(t, w.Close())
	out, readErr := io.ReadAll(r)
	require.NoError(t, readErr)
	return string(out), fnErr
}

func TestPrintRecord_Text(t *testing.T) {
	record := sampleRecord()

	out, err := captureStdout(t, func() error {
		return printRecord(record, "text")
	})
	require.NoError(t, err)
	require.Contains(t, out, "Platform:")
	require.Contains(t, out, "android")
	require.Contains(t, out, "Store Version:")
	require.Contains(t, out, "9.2.1")
	require.Contains(t, out, "9.0.0")
	require.Contains(t, out, record.StoreURL)
}

func TestPrintRecord_TextOmitsAbsentFields(t *testing.T) {
	record := &store.VersionRecord{StoreVersion: "1.0.0", Platform: store.IOS}

	out, err := captureStdout(t, func() error {
		return printRecord(record, "text")
	})
	require.NoError(t, err)
	require.Contains(t, out, "1.0.0")
	require.NotContains(t, out, "Local Version:")
	require.NotContains(t, out, "Store URL:")
}

func TestPrintRecord_JSON(t *testing.T) {
	record := sampleRecord()

	out, err := captureStdout(t, func() error {
		return printRecord(record, "json")
	})
	require.NoError(t, err)

	var decoded store.VersionRecord
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Equal(t, *record, decoded)
}

func TestPrintRecord_UnknownFormat(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return printRecord(sampleRecord(), "yaml")
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown output format")
	require.Empty(t, out)
}

func TestWriteRecord_JSON(t *testing.T) {
	t.Parallel()

	outputFile := filepath.Join(t.TempDir(), "record.json")
	record := sampleRecord()

	require.NoError(t, writeRecord(record, outputFile, "json"))

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var decoded store.VersionRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, *record, decoded)
}

func TestWriteRecord_Text(t *testing.T) {
	t.Parallel()

	outputFile := filepath.Join(t.TempDir(), "record.txt")
	record := sampleRecord()

	require.NoError(t, writeRecord(record, outputFile, "text"))

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "Platform: android\n")
	require.Contains(t, string(data), "Store Version: 9.2.1\n")
	require.Contains(t, string(data), "Local Version: 9.0.0\n")
	require.Contains(t, string(data), "Store URL: "+record.StoreURL+"\n")
}

func TestWriteRecord_UnknownFormat(t *testing.T) {
	t.Parallel()

	outputFile := filepath.Join(t.TempDir(), "record.out")
	err := writeRecord(sampleRecord(), outputFile, "yaml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown output format")
	require.NoFileExists(t, outputFile)
}
