package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	t.Setenv("KNOWLEDGE_FILE", "")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeCmd(t *testing.T) {
	out, err := run(t, analyzeCmd(), "--symptom", "febbre", "-s", "tosse", "--age", "30")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	var result struct {
		SeverityLevel string `json:"severity_level"`
		Urgency       string `json:"urgency"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if result.SeverityLevel != "moderata" || result.Urgency != "within_week" {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestAnalyzeCmdErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no symptoms", args: nil},
		{name: "bad sex", args: []string{"-s", "febbre", "--sex", "X"}},
		{name: "description without symptoms", args: []string{"-d", "sto benissimo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, analyzeCmd(), tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestEmergencyCmd(t *testing.T) {
	out, err := run(t, emergencyCmd(), "-s", "confusione", "--age", "80")
	if err != nil {
		t.Fatalf("emergency: %v", err)
	}
	if !strings.Contains(out, `"urgency_level": "urgent"`) {
		t.Errorf("unexpected output %s", out)
	}
}

func TestKBExportAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.yaml")

	if _, err := run(t, kbCmd(), "export", "--file", path); err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || !bytes.Contains(data, []byte("febbre")) {
		t.Fatalf("exported file missing tables: %v", err)
	}

	out, err := run(t, kbCmd(), "validate", path)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "ok (21 symptoms, 10 diseases, 22 interactions") {
		t.Errorf("unexpected validate output %q", out)
	}

	if err := os.WriteFile(path, []byte("symptoms: [}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, kbCmd(), "validate", path); err == nil {
		t.Error("expected invalid YAML to fail validation")
	}
}
