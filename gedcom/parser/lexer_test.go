package parser

import "testing"

func TestParseRawLineBasic(t *testing.T) {
	cases := []struct {
		raw   string
		level int
		key   string
		tag   string
		value string
	}{
		{"0 HEAD", 0, "", "HEAD", ""},
		{"0 @I1@ INDI", 0, "@I1@", "INDI", ""},
		{"1 NAME John /Doe/", 1, "", "NAME", "John /Doe/"},
		{"2 DATE 1 Jan 1900", 2, "", "DATE", "1 Jan 1900"},
		{"10 NOTE a note with  two spaces", 10, "", "NOTE", "a note with  two spaces"},
	}
	for _, c := range cases {
		line, err := ParseRawLine(c.raw, 1)
		if err != nil {
			t.Fatalf("ParseRawLine(%q) error: %v", c.raw, err)
		}
		if line.Level != c.level || line.Key != c.key || line.Tag != c.tag || line.Value != c.value {
			t.Errorf("ParseRawLine(%q) = %+v, want {%d %q %q %q}", c.raw, line, c.level, c.key, c.tag, c.value)
		}
	}
}

func TestParseRawLineErrors(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"HEAD",
		"0",
		"0 ",
		"0 @@ INDI",
		"0 @I1",
		"0 @I1@INDI",
	}
	for _, raw := range cases {
		if _, err := ParseRawLine(raw, 1); err == nil {
			t.Errorf("ParseRawLine(%q) expected an error, got none", raw)
		}
	}
}

func TestParseRawLineMaxLengthBoundary(t *testing.T) {
	exact := "0 " + stringsRepeat("A", MaxLineLength-2)
	if len(exact) != MaxLineLength {
		t.Fatalf("test setup: exact line length = %d, want %d", len(exact), MaxLineLength)
	}
	if _, err := ParseRawLine(exact, 1); err != nil {
		t.Errorf("line at exactly MaxLineLength should be accepted, got %v", err)
	}

	tooLong := exact + "A"
	if _, err := ParseRawLine(tooLong, 1); err == nil {
		t.Errorf("line one byte over MaxLineLength should be rejected")
	}
}

func stringsRepeat(s string, n int) string {
	out := make([]byte, 0, n*len(s))
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

func TestReadLinesSkipsBlankLines(t *testing.T) {
	text := "0 HEAD\n\n1 SOUR test\n   \n0 TRLR\n"
	var errs []*LexError
	lines := ReadLines(NewStringSource(text), &errs)
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 non-blank lines, got %d: %+v", len(lines), lines)
	}
}

func TestReadLinesCollectsErrorsAndContinues(t *testing.T) {
	text := "0 HEAD\nBADLINE\n0 TRLR\n"
	var errs []*LexError
	lines := ReadLines(NewStringSource(text), &errs)
	if len(errs) != 1 {
		t.Fatalf("expected 1 lex error, got %d", len(errs))
	}
	if len(lines) != 2 {
		t.Fatalf("expected the 2 good lines to still parse, got %d", len(lines))
	}
}
