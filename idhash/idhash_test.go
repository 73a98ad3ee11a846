package idhash

import (
	"strings"
	"testing"
)

func TestIdHashShape(t *testing.T) {
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	names := []string{
		"The Matrix (1999)",
		"Better Call Saul",
		"",
		"a",
		"Ünïcødé Nåme",
	}
	for _, name := range names {
		id := IdHash(name)
		if len(id) != 20 {
			t.Errorf("IdHash(%q) length = %d, want 20", name, len(id))
		}
		for _, c := range id {
			if !strings.ContainsRune(alphabet, c) {
				t.Errorf("IdHash(%q) contains %q, not base62", name, c)
			}
		}
	}
}

func TestIdHashDeterministic(t *testing.T) {
	for _, name := range []string{"Alien", "Alien (1979)", "alien"} {
		if IdHash(name) != IdHash(name) {
			t.Errorf("IdHash(%q) not stable across calls", name)
		}
	}
	if IdHash("Alien") == IdHash("alien") {
		t.Error("distinct names mapped to the same id")
	}
}

func TestNewRandomID(t *testing.T) {
	a, b := NewRandomID(), NewRandomID()
	if a == "" || a == b {
		t.Errorf("NewRandomID() = %q, %q; want distinct non-empty ids", a, b)
	}
}
