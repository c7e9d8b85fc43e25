package ot

import "fmt"

// ErrorSeverity represents the severity level of a font decoding error.
type ErrorSeverity int

const (
	// SeverityCritical indicates a severe error that makes the font unusable for shaping.
	SeverityCritical ErrorSeverity = iota
	// SeverityMajor indicates a problem that disables a table or lookup, but not the font.
	SeverityMajor
	// SeverityMinor indicates a minor issue that can be safely ignored in most cases.
	SeverityMinor
)

// String returns a human-readable representation of the error severity.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	default:
		return "UNKNOWN"
	}
}

// FontError represents an error encountered while decoding font tables into the
// shaping model. Decoding continues after errors; affected subtables are dropped.
type FontError struct {
	Table    Tag           // The OpenType table where the error occurred (e.g., "GSUB", "GPOS")
	Section  string        // Specific section within the table (e.g., "lookup 12", "ScriptList")
	Issue    string        // Human-readable description of the issue
	Severity ErrorSeverity // Severity level of the error
}

// Error implements the error interface.
func (e FontError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Table, e.Issue)
	}
	return fmt.Sprintf("[%s] %s/%s: %s", e.Severity, e.Table, e.Section, e.Issue)
}

// FontWarning represents a non-critical issue encountered while decoding.
type FontWarning struct {
	Table Tag    // The OpenType table where the warning occurred
	Issue string // Human-readable description of the warning
}

// String returns a human-readable representation of the warning.
func (w FontWarning) String() string {
	return fmt.Sprintf("[WARNING] %s: %s", w.Table, w.Issue)
}

// Diagnostics accumulates errors and warnings while a font is decoded.
// The zero value is ready to use.
type Diagnostics struct {
	errors   []FontError
	warnings []FontWarning
}

// AddError records a decoding error.
func (d *Diagnostics) AddError(table Tag, section string, issue string, severity ErrorSeverity) {
	tracer().Debugf("font error in %s/%s: %s", table, section, issue)
	d.errors = append(d.errors, FontError{
		Table:    table,
		Section:  section,
		Issue:    issue,
		Severity: severity,
	})
}

// AddWarning records a decoding warning.
func (d *Diagnostics) AddWarning(table Tag, issue string) {
	d.warnings = append(d.warnings, FontWarning{
		Table: table,
		Issue: issue,
	})
}

// Errors returns all recorded errors.
func (d *Diagnostics) Errors() []FontError {
	return d.errors
}

// Warnings returns all recorded warnings.
func (d *Diagnostics) Warnings() []FontWarning {
	return d.warnings
}

// HasErrors returns true if any errors have been recorded.
func (d *Diagnostics) HasErrors() bool {
	return len(d.errors) > 0
}

// CriticalErrors returns all errors with critical severity.
func (d *Diagnostics) CriticalErrors() []FontError {
	critical := make([]FontError, 0)
	for _, err := range d.errors {
		if err.Severity == SeverityCritical {
			critical = append(critical, err)
		}
	}
	return critical
}

// HasCriticalErrors returns true if any critical errors have been recorded.
func (d *Diagnostics) HasCriticalErrors() bool {
	for _, err := range d.errors {
		if err.Severity == SeverityCritical {
			return true
		}
	}
	return false
}
