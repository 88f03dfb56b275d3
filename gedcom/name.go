package gedcom

import "strings"

// Surname returns the surname part of a Gedcom name ("given /Surname/
// suffix"), or "____" if the name has no surname (spec §4.6).
func Surname(name string) string {
	start := strings.IndexByte(name, '/')
	if start < 0 {
		return "____"
	}
	rest := name[start+1:]
	end := strings.IndexByte(rest, '/')
	surname := rest
	if end >= 0 {
		surname = rest[:end]
	}
	surname = strings.TrimSpace(surname)
	if surname == "" {
		return "____"
	}
	return surname
}

// FirstInitial returns the first letter of the first given-name piece of a
// Gedcom name, uppercased, or '$' if none is found.
func FirstInitial(name string) byte {
	inSurname := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '/' {
			inSurname = !inSurname
			continue
		}
		if inSurname || c == ' ' || c == '\t' {
			continue
		}
		if isLetter(c) {
			return upper(c)
		}
		return '$'
	}
	return '$'
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// Soundex returns the classical 4-character Soundex code of a surname (spec
// §4.6): uppercase, keep the first letter, map the rest to digits, collapse
// a letter that maps to the same digit as the one before it, drop letters
// that map to no digit, pad with '0' to length 4. A missing surname codes
// as "Z999".
func Soundex(surname string) string {
	if surname == "" || len(surname) > 255 || surname == "____" {
		return "Z999"
	}
	upperName := strings.ToUpper(surname)
	code := make([]byte, 0, 4)
	code = append(code, upperName[0])
	var last byte
	for i := 1; i < len(upperName) && len(code) < 4; i++ {
		d := soundexDigit(upperName[i])
		if d == 0 {
			last = 0
			continue
		}
		if d == last {
			continue
		}
		code = append(code, d)
		last = d
	}
	for len(code) < 4 {
		code = append(code, '0')
	}
	return string(code)
}

// soundexDigit returns a letter's Soundex digit, or 0 if the letter carries
// none (vowels, H, W, Y).
func soundexDigit(c byte) byte {
	switch c {
	case 'B', 'P', 'F', 'V':
		return '1'
	case 'C', 'S', 'K', 'G', 'J', 'Q', 'X', 'Z':
		return '2'
	case 'D', 'T':
		return '3'
	case 'L':
		return '4'
	case 'M', 'N':
		return '5'
	case 'R':
		return '6'
	default:
		return 0
	}
}

// NameKey computes the 5-character phonetic name key used by the name
// index (spec §4.6): first initial followed by the 4-character Soundex
// code of the surname.
func NameKey(name string) string {
	return string(FirstInitial(name)) + Soundex(Surname(name))
}

// squeeze reduces a Gedcom name to a sequence of uppercase, letters-only
// words, dropping the surname's slashes and any punctuation. Used by
// ExactMatch for partial-name comparisons (spec §4.6).
func squeeze(name string) []string {
	var words []string
	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '/':
			flush()
		case c == ' ' || c == '\t':
			flush()
		case isLetter(c):
			word.WriteByte(upper(c))
		}
	}
	flush()
	return words
}

// pieceMatch reports whether partial is a subsequence-match of complete:
// both must begin with the same letter, and partial's remaining letters
// must appear in complete in the same order (not necessarily adjacent).
func pieceMatch(partial, complete string) bool {
	if partial == "" || complete == "" || partial[0] != complete[0] {
		return false
	}
	pi := 1
	for ci := 1; ci < len(complete) && pi < len(partial); ci++ {
		if partial[pi] == complete[ci] {
			pi++
		}
	}
	return pi == len(partial)
}

// ExactMatch reports whether every squeezed word of partial matches some
// squeezed word of complete via pieceMatch, despite the name ("exactMatch"
// doesn't mean literally exact — spec §4.6 / original_source naming).
func ExactMatch(partial, complete string) bool {
	partWords := squeeze(partial)
	compWords := squeeze(complete)
	for _, p := range partWords {
		matched := false
		for _, c := range compWords {
			if pieceMatch(p, c) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// CompareNames orders two Gedcom names for the name-sort sequence
// operation (spec §4.6): by surname, then first initial, then the
// remaining given-name pieces word by word; a name whose words are a
// strict prefix of the other's sorts first.
func CompareNames(name1, name2 string) int {
	if r := strings.Compare(Surname(name1), Surname(name2)); r != 0 {
		return r
	}
	if r := int(FirstInitial(name1)) - int(FirstInitial(name2)); r != 0 {
		return r
	}
	words1 := givenWords(name1)
	words2 := givenWords(name2)
	for i := 0; i < len(words1) && i < len(words2); i++ {
		if r := strings.Compare(words1[i], words2[i]); r != 0 {
			return r
		}
	}
	return len(words1) - len(words2)
}

// givenWords returns the non-surname words of a Gedcom name, in order.
func givenWords(name string) []string {
	var words []string
	var word strings.Builder
	inSurname := false
	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '/':
			inSurname = !inSurname
			flush()
		case c == ' ' || c == '\t':
			flush()
		default:
			if !inSurname {
				word.WriteByte(c)
			}
		}
	}
	flush()
	return words
}
