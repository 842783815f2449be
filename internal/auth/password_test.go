package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3nha123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "s3nha123" {
		t.Fatal("Hash returned the plaintext")
	}
	if !h.Verify("s3nha123", hash) {
		t.Error("Verify: correct password rejected")
	}
	if h.Verify("wrong", hash) {
		t.Error("Verify: wrong password accepted")
	}
}

func TestHasher_Salted(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	a, _ := h.Hash("same")
	b, _ := h.Hash("same")
	if a == b {
		t.Error("two hashes of the same password should differ")
	}
}

func TestHasher_VerifyMalformedHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	if h.Verify("x", "not-a-bcrypt-hash") {
		t.Error("Verify: malformed hash accepted")
	}
}

func TestNewHasher_CostOutOfRange(t *testing.T) {
	if h := NewHasher(100); h.cost != bcrypt.DefaultCost {
		t.Errorf("cost: got %d, want %d", h.cost, bcrypt.DefaultCost)
	}
}
