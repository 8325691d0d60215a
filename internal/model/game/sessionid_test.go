package game

import (
	"strings"
	"testing"
)

func TestNewSessionIDEmbedsImposter(t *testing.T) {
	id := NewSessionID("librarian")

	imposterID, ok := DecodeSessionID(id)
	if !ok {
		t.Fatalf("expected %q to decode", id)
	}
	if imposterID != "librarian" {
		t.Fatalf("unexpected imposter: got %s want librarian", imposterID)
	}
}

func TestNewSessionIDOpaqueComponentHasNoDelimiter(t *testing.T) {
	id := NewSessionID("mayor")

	if strings.Count(id, "-") != 1 {
		t.Fatalf("expected exactly one delimiter in %q", id)
	}
}

func TestNewSessionIDUnique(t *testing.T) {
	a := NewSessionID("janitor")
	b := NewSessionID("janitor")
	if a == b {
		t.Fatalf("expected unique identifiers, got %q twice", a)
	}
}

func TestDecodeSessionID(t *testing.T) {
	imposterID, ok := DecodeSessionID("abc123-librarian")
	if !ok || imposterID != "librarian" {
		t.Fatalf("unexpected decode: got %q, %t", imposterID, ok)
	}

	if _, ok := DecodeSessionID("nodelimiter"); ok {
		t.Fatal("expected decode failure without delimiter")
	}
	if _, ok := DecodeSessionID("trailing-"); ok {
		t.Fatal("expected decode failure with empty trailing segment")
	}
	if _, ok := DecodeSessionID("-leading"); ok {
		t.Fatal("expected decode failure with empty opaque component")
	}
}
