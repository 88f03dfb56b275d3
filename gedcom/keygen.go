package gedcom

import (
	"crypto/rand"
	"fmt"
)

const keyAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// keyTagFor maps a record kind to the single letter DeadEnds uses as the
// prefix of a generated key (spec §6): I/F/S/E/X for person/family/source/
// event/other.
func keyTagFor(kind RecordKind) byte {
	switch kind {
	case KindPerson:
		return 'I'
	case KindFamily:
		return 'F'
	case KindSource:
		return 'S'
	case KindEvent:
		return 'E'
	default:
		return 'X'
	}
}

// randomKeyBody returns 6 random characters drawn from [0-9A-Z].
func randomKeyBody() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, 6)
	for i, b := range buf {
		out[i] = keyAlphabet[int(b)%len(keyAlphabet)]
	}
	return string(out), nil
}

// GenerateKey generates a fresh record key of the shape
// "@<T><6 chars from [0-9A-Z]>@" for the given record kind, retrying on
// collision (as reported by exists) up to 50 times before giving up (spec
// §6).
func GenerateKey(kind RecordKind, exists func(string) bool) (string, error) {
	prefix := keyTagFor(kind)
	for attempt := 0; attempt < 50; attempt++ {
		body, err := randomKeyBody()
		if err != nil {
			return "", fmt.Errorf("generate key: %w", err)
		}
		key := fmt.Sprintf("@%c%s@", prefix, body)
		if exists == nil || !exists(key) {
			return key, nil
		}
	}
	return "", fmt.Errorf("generate key: exhausted 50 attempts for kind %s", kind)
}
