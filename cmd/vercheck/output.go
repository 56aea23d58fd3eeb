package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/rodrigopv/vercheck/internal/store"
)

// printRecord formats and prints a resolved record to stdout.
func printRecord(record *store.VersionRecord, outputFormat string) error {
	switch outputFormat {
	case "json":
		outJSON, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal record to JSON: %w", err)
		}
		fmt.Println(string(outJSON))
	case "text":
		// Colors automatically handle non-TTY environments.
		title := color.New(color.FgWhite, color.Bold).SprintFunc()
		label := color.New(color.FgYellow).SprintFunc()
		value := color.New(color.FgCyan).SprintFunc()

		fmt.Printf("%s\n", title("Store Version"))
		fmt.Printf("%s %s\n", label("Platform:"), value(string(record.Platform)))
		fmt.Printf("%s %s\n", label("Store Version:"), value(record.StoreVersion))
		if record.LocalVersion != "" {
			fmt.Printf("%s %s\n", label("Local Version:"), value(record.LocalVersion))
		}
		if record.StoreURL != "" {
			fmt.Printf("%s %s\n", label("Store URL:"), value(record.StoreURL))
		}
	default:
		return fmt.Errorf("unknown output format: %s", outputFormat)
	}
	return nil
}

// writeRecord formats and writes a resolved record to a file.
func writeRecord(record *store.VersionRecord, outputFile string, outputFormat string) error {
	var outputBytes []byte

	switch outputFormat {
	case "json":
		var err error
		outputBytes, err = json.MarshalIndent(record, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal record to JSON for file output: %w", err)
		}
	case "text":
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Platform: %s\n", record.Platform))
		sb.WriteString(fmt.Sprintf("Store Version: %s\n", record.StoreVersion))
		if record.LocalVersion != "" {
			sb.WriteString(fmt.Sprintf("Local Version: %s\n", record.LocalVersion))
		}
		if record.StoreURL != "" {
			sb.WriteString(fmt.Sprintf("Store URL: %s\n", record.StoreURL))
		}
		outputBytes = []byte(sb.String())
	default:
		return fmt.Errorf("unknown output format for file writing: %s", outputFormat)
	}

	if err := os.WriteFile(outputFile, outputBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file '%s': %w", outputFile, err)
	}
	return nil
}
