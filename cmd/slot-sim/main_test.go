package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunWritesReportToStdout(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-sessions", "4", "-workers", "2", "-max-spins", "10", "-seed", "7"}, &out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `"sessions": 4`) || !strings.Contains(out.String(), `"seed": 7`) {
		t.Errorf("report = %s", out.String())
	}
}

func TestRunWritesReportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	var out bytes.Buffer
	err := run([]string{"-sessions", "2", "-workers", "1", "-seed", "3", "-out", path}, &out)
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("stdout not empty: %s", out.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"sessions": 2`)) {
		t.Errorf("report file = %s", data)
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	if err := run([]string{"-workers", "0"}, &bytes.Buffer{}); err == nil {
		t.Error("expected validation error")
	}
}
