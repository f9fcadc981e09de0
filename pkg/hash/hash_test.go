package hash

import "testing"

func TestHashAndCheck(t *testing.T) {
	h, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h == "s3cret" {
		t.Fatalf("hash must not equal the password")
	}
	if !CheckPasswordHash("s3cret", h) {
		t.Fatalf("expected password to match")
	}
	if CheckPasswordHash("wrong", h) {
		t.Fatalf("expected mismatch")
	}
	if CheckPasswordHash("s3cret", "not-a-hash") {
		t.Fatalf("expected malformed hash to fail")
	}
}
