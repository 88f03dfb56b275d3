package gedcom

import "testing"

func TestSurname(t *testing.T) {
	cases := map[string]string{
		"John /Smith/":     "Smith",
		"John /Van Cott/":  "Van Cott",
		"No Slashes Here":  "____",
		"/":                "____",
		"/  /":             "____",
		"Anna /Van Cott/":  "Van Cott",
	}
	for name, want := range cases {
		if got := Surname(name); got != want {
			t.Errorf("Surname(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestFirstInitial(t *testing.T) {
	cases := map[string]byte{
		"John /Smith/": 'J',
		"john /smith/": 'J',
		"/Smith/":      '$',
		"":             '$',
	}
	for name, want := range cases {
		if got := FirstInitial(name); got != want {
			t.Errorf("FirstInitial(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestSoundex(t *testing.T) {
	cases := map[string]string{
		"Smith":     "S530",
		"Smyth":     "S530",
		"Gutierrez": "G362",
		// The kept first letter's own code does not seed the collapse
		// state: "P" is never treated as already-emitted, so the
		// following "F" (same digit as "P") still codes.
		"Pfister": "P123",
		"Jackson": "J250",
		"Tymczak": "T522",
		"____":    "Z999",
		"":        "Z999",
	}
	for surname, want := range cases {
		if got := Soundex(surname); got != want {
			t.Errorf("Soundex(%q) = %q, want %q", surname, got, want)
		}
	}
}

// TestSoundexFirstLetterDoesNotSeedCollapse guards against reintroducing a
// collapse-state bug: seeding the duplicate-digit tracker with the kept
// first letter's own code (instead of resetting it to 0) would wrongly
// collapse a second letter sharing the first letter's digit, as it does
// here with "P" and "F" (both code 1).
func TestSoundexFirstLetterDoesNotSeedCollapse(t *testing.T) {
	if got, want := Soundex("Pfister"), "P123"; got != want {
		t.Errorf("Soundex(%q) = %q, want %q (P and F must not collapse)", "Pfister", got, want)
	}
}

func TestNameKey(t *testing.T) {
	got := NameKey("John /Smith/")
	want := "J" + "S530"
	if got != want {
		t.Errorf("NameKey = %q, want %q", got, want)
	}
}

func TestExactMatch(t *testing.T) {
	cases := []struct {
		partial, complete string
		want              bool
	}{
		{"John /Smith/", "John Quincy /Smith/", true},
		{"Jn /Sm/", "John /Smith/", true},
		{"Anna /Van Cott/", "Anna Marie /Van Cott/", true},
		{"Bob /Smith/", "John /Smith/", false},
		{"John /Jones/", "John /Smith/", false},
	}
	for _, c := range cases {
		if got := ExactMatch(c.partial, c.complete); got != c.want {
			t.Errorf("ExactMatch(%q, %q) = %v, want %v", c.partial, c.complete, got, c.want)
		}
	}
}

func TestCompareNames(t *testing.T) {
	if CompareNames("John /Smith/", "John /Smith/") != 0 {
		t.Errorf("expected equal names to compare equal")
	}
	if CompareNames("Adam /Smith/", "Bob /Smith/") >= 0 {
		t.Errorf("expected Adam < Bob")
	}
	if CompareNames("John /Adams/", "John /Smith/") >= 0 {
		t.Errorf("expected surname Adams < Smith")
	}
	if CompareNames("John /Smith/", "John Paul /Smith/") >= 0 {
		t.Errorf("expected shorter prefix name to sort before the longer one")
	}
}
