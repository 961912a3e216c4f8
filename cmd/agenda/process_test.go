package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRunProcess(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "config.txt", "2024 5\nCAT ENG\n")
	requestsPath := writeFile(t, dir, "requests.txt", strings.Join([]string{
		"Tancat RoomA 01/05/2024 05/05/2024 LMCJV 08-20",
		"Yoga RoomA 02/05/2024 02/05/2024 Thu 10-11",
		"Pilates RoomB 02/05/2024 02/05/2024 Thu 10-11",
	}, "\n"))

	var out bytes.Buffer
	if err := runProcess(context.Background(), &out, configPath, requestsPath, ""); err != nil {
		t.Fatalf("runProcess returned error: %v", err)
	}

	report := out.String()
	if !strings.Contains(report, "May 2024") {
		t.Fatalf("expected output-locale month header, got:\n%s", report)
	}
	if !strings.Contains(report, "accepted: 2, rejected: 1, incidents: 1") {
		t.Fatalf("unexpected summary:\n%s", report)
	}
	if !strings.Contains(report, "Tancat") || !strings.Contains(report, "Pilates") {
		t.Fatalf("expected room listings for both rooms:\n%s", report)
	}
	if !strings.Contains(report, "[conflict]") {
		t.Fatalf("expected a conflict incident in the report:\n%s", report)
	}
}

func TestRunProcess_MissingFiles(t *testing.T) {
	var out bytes.Buffer
	if err := runProcess(context.Background(), &out, "missing-config", "missing-requests", ""); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestVersionCmd(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(out.String(), "agenda") {
		t.Fatalf("unexpected version output: %q", out.String())
	}
}
