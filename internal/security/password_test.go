package security

import (
	"context"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 2)
	ctx := context.Background()

	digest, err := h.Hash(ctx, "ChangeMe123!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if digest == "ChangeMe123!" || !strings.HasPrefix(digest, "$2") {
		t.Fatalf("digest does not look like bcrypt output: %q", digest)
	}
	if !h.Verify(ctx, "ChangeMe123!", digest) {
		t.Fatalf("correct password rejected")
	}
	if h.Verify(ctx, "wrong", digest) {
		t.Fatalf("wrong password accepted")
	}
}

func TestHasher_MalformedDigest(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 2)
	// Verify must return false, not panic or error, on garbage digests.
	for _, digest := range []string{"", "not-a-digest", "$2a$zz$broken"} {
		if h.Verify(context.Background(), "whatever", digest) {
			t.Fatalf("malformed digest %q accepted", digest)
		}
	}
}

func TestHasher_CancelledContext(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 1)
	// Occupy the single slot so the next caller blocks on the gate.
	h.gate <- struct{}{}
	defer func() { <-h.gate }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if h.Verify(ctx, "pw", "$2a$04$abcdefghijklmnopqrstuv") {
		t.Fatalf("verify succeeded with cancelled context")
	}
	if _, err := h.Hash(ctx, "pw"); err == nil {
		t.Fatalf("expected hash to fail with cancelled context")
	}
}

func TestHasher_DummyDigestMatchesCost(t *testing.T) {
	// The decoy comparison for unknown accounts must run at the same work
	// factor as a real mismatch, or response timing reveals whether the
	// email exists.
	for _, cost := range []int{bcrypt.MinCost, bcrypt.MinCost + 2} {
		h := NewHasher(cost, 2)
		got, err := bcrypt.Cost(h.dummyDigest)
		if err != nil {
			t.Fatalf("dummy digest unparseable: %v", err)
		}
		if got != h.cost {
			t.Fatalf("dummy digest cost %d, hasher cost %d", got, h.cost)
		}
	}
}

func TestHasher_DefaultsApplied(t *testing.T) {
	h := NewHasher(0, 0)
	if h.cost != defaultCost {
		t.Fatalf("expected default cost %d, got %d", defaultCost, h.cost)
	}
	if cap(h.gate) != defaultConcurrency {
		t.Fatalf("expected default concurrency %d, got %d", defaultConcurrency, cap(h.gate))
	}
}
