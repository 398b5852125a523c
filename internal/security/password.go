// Package security wraps bcrypt hashing behind a bounded concurrency gate.
// Hash verification burns a full work-factor of CPU per call; the gate caps
// how many comparisons run at once so a burst of logins cannot starve the
// rest of the server.
package security

import (
	"context"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultCost        = 12
	defaultConcurrency = 8
)

// dummyPassword feeds the decoy comparison performed when a login targets an
// unknown email, keeping response timing independent of account existence.
const dummyPassword = "decoy-password-for-unknown-accounts"

// Hasher produces and verifies salted bcrypt digests with a fixed cost.
type Hasher struct {
	cost        int
	gate        chan struct{}
	dummyDigest []byte
}

// NewHasher builds a Hasher. Cost below bcrypt's minimum falls back to the
// default cost; maxConcurrency <= 0 falls back to defaultConcurrency.
func NewHasher(cost, maxConcurrency int) *Hasher {
	if cost < bcrypt.MinCost {
		cost = defaultCost
	}
	if maxConcurrency <= 0 {
		maxConcurrency = defaultConcurrency
	}
	h := &Hasher{
		cost: cost,
		gate: make(chan struct{}, maxConcurrency),
	}
	// The decoy digest must carry the same cost as real digests, otherwise
	// the unknown-email comparison finishes measurably faster than a real
	// mismatch. One extra hash at startup buys the timing parity.
	h.dummyDigest, _ = bcrypt.GenerateFromPassword([]byte(dummyPassword), h.cost)
	return h
}

// Hash derives a salted digest of password.
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.acquire(ctx); err != nil {
		return "", err
	}
	defer h.release()

	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether password matches digest. It never returns an error:
// a malformed digest, like a mismatch, yields false.
func (h *Hasher) Verify(ctx context.Context, password, digest string) bool {
	if err := h.acquire(ctx); err != nil {
		return false
	}
	defer h.release()

	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// VerifyDummy burns one comparison against the decoy digest so a login
// against an unknown email costs the same as a real mismatch.
func (h *Hasher) VerifyDummy(ctx context.Context, password string) {
	_ = h.Verify(ctx, password, string(h.dummyDigest))
}

func (h *Hasher) acquire(ctx context.Context) error {
	select {
	case h.gate <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hasher) release() {
	<-h.gate
}
