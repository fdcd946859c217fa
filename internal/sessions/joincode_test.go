package sessions

import (
	"strings"
	"testing"
)

func TestGenerateJoinCodeLength(t *testing.T) {
	code, err := GenerateJoinCode()
	if err != nil {
		t.Fatalf("generate join code: %v", err)
	}
	if len(code) != JoinCodeLength {
		t.Fatalf("expected %d characters, got %d (%q)", JoinCodeLength, len(code), code)
	}
}

func TestGenerateJoinCodeAlphabet(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateJoinCode()
		if err != nil {
			t.Fatalf("generate join code: %v", err)
		}
		for _, r := range code {
			if !strings.ContainsRune(joinCodeAlphabet, r) {
				t.Fatalf("code %q contains %q outside the allowed alphabet", code, r)
			}
		}
	}
}

func TestGenerateJoinCodeVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateJoinCode()
		if err != nil {
			t.Fatalf("generate join code: %v", err)
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected varied codes, got %d distinct out of 50", len(seen))
	}
}
