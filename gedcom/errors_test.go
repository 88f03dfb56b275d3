package gedcom

import "testing"

func TestErrorLogSortsByFileThenLine(t *testing.T) {
	log := NewErrorLog()
	log.Add(ErrorGedcom, SeverityWarning, "b.ged", 5, "second")
	log.Add(ErrorGedcom, SeverityWarning, "a.ged", 10, "third")
	log.Add(ErrorGedcom, SeverityWarning, "a.ged", 2, "first")

	entries := log.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	want := []string{"first", "third", "second"}
	for i, e := range entries {
		if e.Message != want[i] {
			t.Errorf("entries[%d] = %q, want %q", i, e.Message, want[i])
		}
	}
}

func TestHasFatalAndSevereOrWorse(t *testing.T) {
	log := NewErrorLog()
	log.Add(ErrorGedcom, SeverityWarning, "f", 1, "warn")
	if log.HasFatal() || log.HasSevereOrWorse() {
		t.Fatalf("warning-only log should not be fatal or severe")
	}
	log.Add(ErrorGedcom, SeveritySevere, "f", 2, "severe")
	if log.HasFatal() {
		t.Fatalf("log has no fatal entry")
	}
	if !log.HasSevereOrWorse() {
		t.Fatalf("log should be severe-or-worse")
	}
	log.Add(ErrorSystem, SeverityFatal, "f", 3, "fatal")
	if !log.HasFatal() {
		t.Fatalf("log should now be fatal")
	}
}

func TestErrorImplementsErrorInterface(t *testing.T) {
	var err error = &Error{Kind: ErrorLinkage, Severity: SeverityWarning, File: "x.ged", Line: 7, Message: "dangling FAMC"}
	if err.Error() == "" {
		t.Fatalf("Error() should not be empty")
	}
}
