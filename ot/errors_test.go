package ot

import "testing"

// TestErrorSeverity verifies the ErrorSeverity String() method.
func TestErrorSeverity(t *testing.T) {
	tests := []struct {
		severity ErrorSeverity
		expected string
	}{
		{SeverityCritical, "CRITICAL"},
		{SeverityMajor, "MAJOR"},
		{SeverityMinor, "MINOR"},
		{ErrorSeverity(999), "UNKNOWN"},
	}

	for _, tt := range tests {
		result := tt.severity.String()
		if result != tt.expected {
			t.Errorf("ErrorSeverity(%d).String() = %q; want %q", tt.severity, result, tt.expected)
		}
	}
}

// TestFontError verifies FontError formatting.
func TestFontError(t *testing.T) {
	err := FontError{
		Table:    T("GSUB"),
		Section:  "lookup 6",
		Issue:    "unsupported subtable",
		Severity: SeverityMajor,
	}
	if err.Error() != "[MAJOR] GSUB/lookup 6: unsupported subtable" {
		t.Errorf("unexpected error message: %q", err.Error())
	}
	err.Section = ""
	if err.Error() != "[MAJOR] GSUB: unsupported subtable" {
		t.Errorf("unexpected error message: %q", err.Error())
	}
}

// TestDiagnostics verifies accumulation of errors and warnings.
func TestDiagnostics(t *testing.T) {
	var d Diagnostics
	if d.HasErrors() || d.HasCriticalErrors() {
		t.Fatalf("expected empty diagnostics")
	}
	d.AddWarning(T("kern"), "no horizontal subtables")
	d.AddError(T("GPOS"), "lookup 2", "anchor out of range", SeverityMinor)
	if !d.HasErrors() || d.HasCriticalErrors() {
		t.Errorf("expected one non-critical error")
	}
	d.AddError(T("cmap"), "", "no cmap", SeverityCritical)
	if len(d.CriticalErrors()) != 1 {
		t.Errorf("expected 1 critical error, have %d", len(d.CriticalErrors()))
	}
	if len(d.Warnings()) != 1 || d.Warnings()[0].String() != "[WARNING] kern: no horizontal subtables" {
		t.Errorf("unexpected warnings: %v", d.Warnings())
	}
	if len(d.Errors()) != 2 {
		t.Errorf("expected 2 errors, have %d", len(d.Errors()))
	}
}
