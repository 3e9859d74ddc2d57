package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "findings.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadFindingsBareArray(t *testing.T) {
	path := writeTemp(t, `[
		{"ruleName":"r1","checkerName":"c1","severity":"error","message":"m1","filePath":"a.go","line":3}
	]`)

	findings, octx, err := readFindings(path)
	if err != nil {
		t.Fatalf("readFindings error: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("findings = %d, want 1", len(findings))
	}
	if findings[0].RuleName != "r1" || findings[0].Line != 3 {
		t.Errorf("finding = %+v", findings[0])
	}
	if octx.RunID == "" {
		t.Error("context should get a generated run ID")
	}
}

func TestReadFindingsDocument(t *testing.T) {
	path := writeTemp(t, `{
		"findings": [{"ruleName":"r1","checkerName":"c1","severity":"warning","message":"m1"}],
		"context": {"analysisType":"pull_request","filesAnalyzed":7,"prNumber":12}
	}`)

	findings, octx, err := readFindings(path)
	if err != nil {
		t.Fatalf("readFindings error: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("findings = %d, want 1", len(findings))
	}
	if octx.AnalysisType != "pull_request" || octx.FilesAnalyzed != 7 || octx.PRNumber != 12 {
		t.Errorf("context = %+v", octx)
	}
	if octx.RunID == "" {
		t.Error("missing run ID should be generated")
	}
}

func TestReadFindingsInvalidJSON(t *testing.T) {
	path := writeTemp(t, `{"findings": [`)
	if _, _, err := readFindings(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestReadFindingsMissingFile(t *testing.T) {
	if _, _, err := readFindings("/does/not/exist.json"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestOutPath(t *testing.T) {
	flagOut = "report"
	flagFormats = []string{"terminal:compact", "json:sarif"}
	defer func() { flagOut = ""; flagFormats = nil }()

	if got := outPath(0, 2); got != "report.terminal-compact" {
		t.Errorf("outPath(0) = %q", got)
	}
	if got := outPath(1, 2); got != "report.json-sarif" {
		t.Errorf("outPath(1) = %q", got)
	}
	if got := outPath(0, 1); got != "report" {
		t.Errorf("outPath with single format = %q", got)
	}

	flagOut = ""
	if got := outPath(0, 2); got != "" {
		t.Errorf("outPath with no --out = %q", got)
	}
}
