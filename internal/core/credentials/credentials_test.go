package credentials

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	stored, err := Hash("s3cret-passphrase")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if !strings.Contains(stored, ".") {
		t.Fatalf("stored form missing salt separator: %q", stored)
	}
	if strings.Contains(stored, "s3cret") {
		t.Fatalf("stored form leaks the secret: %q", stored)
	}

	if !Verify("s3cret-passphrase", stored) {
		t.Fatalf("Verify rejected the correct secret")
	}
	if Verify("wrong-passphrase", stored) {
		t.Fatalf("Verify accepted a wrong secret")
	}
}

func TestHashIsSalted(t *testing.T) {
	a, err := Hash("same-secret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	b, err := Hash("same-secret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same secret are identical; salt not applied")
	}
}

func TestVerifyMalformedStoredForm(t *testing.T) {
	cases := []struct {
		name   string
		stored string
	}{
		{"empty", ""},
		{"no separator", "deadbeef"},
		{"bad derived hex", "zzzz.00112233445566778899aabbccddeeff"},
		{"bad salt hex", strings.Repeat("ab", 32) + ".zzzz"},
		{"empty salt", strings.Repeat("ab", 32) + "."},
		{"short derived", "abcd.00112233445566778899aabbccddeeff"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if Verify("anything", tc.stored) {
				t.Fatalf("Verify accepted malformed stored form %q", tc.stored)
			}
		})
	}
}
