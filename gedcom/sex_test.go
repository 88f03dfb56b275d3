package gedcom

import "testing"

func TestParseSexAndString(t *testing.T) {
	cases := []struct {
		code string
		want Sex
	}{
		{"M", SexMale},
		{"F", SexFemale},
		{"U", SexUnknown},
		{"?", SexError},
		{"", SexError},
	}
	for _, c := range cases {
		if got := ParseSex(c.code); got != c.want {
			t.Errorf("ParseSex(%q) = %v, want %v", c.code, got, c.want)
		}
	}
	if SexMale.String() != "M" || SexFemale.String() != "F" || SexUnknown.String() != "U" {
		t.Errorf("Sex.String round trip broken")
	}
}

func TestIsDefinite(t *testing.T) {
	if !SexMale.IsDefinite() || !SexFemale.IsDefinite() {
		t.Errorf("Male/Female should be definite")
	}
	if SexUnknown.IsDefinite() || SexError.IsDefinite() {
		t.Errorf("Unknown/Error should not be definite")
	}
}

func TestPersonSex(t *testing.T) {
	p := NewNode("@I1@", "INDI", "")
	p.AddChild(NewNode("", "SEX", "F"))
	if got := PersonSex(p); got != SexFemale {
		t.Errorf("PersonSex = %v, want Female", got)
	}
	noSex := NewNode("@I2@", "INDI", "")
	if got := PersonSex(noSex); got != SexUnknown {
		t.Errorf("PersonSex with no SEX line = %v, want Unknown", got)
	}
}
