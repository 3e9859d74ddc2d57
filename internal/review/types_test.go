package review

import "testing"

func TestSeverityRank(t *testing.T) {
	tests := []struct {
		severity Severity
		want     int
	}{
		{SeveritySuggestion, 1},
		{SeverityWarning, 2},
		{SeverityError, 3},
		{Severity("unknown"), 0},
	}
	for _, tt := range tests {
		got := SeverityRank(tt.severity)
		if got != tt.want {
			t.Errorf("SeverityRank(%q) = %d, want %d", tt.severity, got, tt.want)
		}
	}
}

func TestMeetsThreshold(t *testing.T) {
	tests := []struct {
		severity  Severity
		threshold Severity
		want      bool
	}{
		{SeverityError, "", false},
		{SeverityError, SeverityError, true},
		{SeverityError, SeverityWarning, true},
		{SeverityError, SeveritySuggestion, true},
		{SeverityWarning, SeverityError, false},
		{SeverityWarning, SeverityWarning, true},
		{SeverityWarning, SeveritySuggestion, true},
		{SeveritySuggestion, SeverityError, false},
		{SeveritySuggestion, SeverityWarning, false},
		{SeveritySuggestion, SeveritySuggestion, true},
	}
	for _, tt := range tests {
		got := MeetsThreshold(tt.severity, tt.threshold)
		if got != tt.want {
			t.Errorf("MeetsThreshold(%q, %q) = %v, want %v", tt.severity, tt.threshold, got, tt.want)
		}
	}
}

func TestParseSeverity(t *testing.T) {
	for _, s := range []string{"suggestion", "warning", "error"} {
		sev, err := ParseSeverity(s)
		if err != nil {
			t.Fatalf("ParseSeverity(%q) error: %v", s, err)
		}
		if string(sev) != s {
			t.Errorf("ParseSeverity(%q) = %q", s, sev)
		}
	}
	if _, err := ParseSeverity("critical"); err == nil {
		t.Error("ParseSeverity should reject unknown severities")
	}
}

func TestFindingLocation(t *testing.T) {
	tests := []struct {
		f    Finding
		want string
	}{
		{Finding{}, ""},
		{Finding{FilePath: "main.go"}, "main.go"},
		{Finding{FilePath: "main.go", Line: 42}, "main.go:42"},
		{Finding{FilePath: "main.go", Line: 42, Column: 15}, "main.go:42:15"},
		{Finding{Line: 42}, ""},
	}
	for _, tt := range tests {
		if got := tt.f.Location(); got != tt.want {
			t.Errorf("Location() = %q, want %q", got, tt.want)
		}
	}
}

func TestComputeSummary(t *testing.T) {
	findings := []Finding{
		{Severity: SeverityError},
		{Severity: SeverityWarning},
		{Severity: SeverityWarning},
		{Severity: SeveritySuggestion},
	}

	s := ComputeSummary(findings)
	if s.Total != 4 {
		t.Errorf("Total = %d, want 4", s.Total)
	}
	if s.Counts.Error != 1 || s.Counts.Warning != 2 || s.Counts.Suggestion != 1 {
		t.Errorf("Counts = %+v, want 1/2/1", s.Counts)
	}
	if s.HighestSeverity != SeverityError {
		t.Errorf("HighestSeverity = %q, want error", s.HighestSeverity)
	}
}

func TestComputeSummaryEmpty(t *testing.T) {
	s := ComputeSummary(nil)
	if s.Total != 0 {
		t.Errorf("Total = %d, want 0", s.Total)
	}
	if s.HighestSeverity != "" {
		t.Errorf("HighestSeverity = %q, want empty", s.HighestSeverity)
	}
}

func TestCountByChecker(t *testing.T) {
	findings := []Finding{
		{CheckerName: "security"},
		{CheckerName: "security"},
		{CheckerName: "complexity"},
	}
	m := CountByChecker(findings)
	if m["security"] != 2 || m["complexity"] != 1 {
		t.Errorf("CountByChecker = %v", m)
	}
}

func TestNewOutputContext(t *testing.T) {
	ctx := NewOutputContext("files", 10)
	if ctx.AnalysisType != "files" || ctx.FilesAnalyzed != 10 {
		t.Errorf("unexpected context %+v", ctx)
	}
	if ctx.RunID == "" {
		t.Error("RunID should be populated")
	}
	if ctx.Timestamp.IsZero() {
		t.Error("Timestamp should be populated")
	}
}
