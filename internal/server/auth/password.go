package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// PasswordHasher wraps bcrypt behind a bounded pool: at most `workers`
// hashes are computed at once, and callers waiting for a slot give up when
// their context ends.
type PasswordHasher struct {
	cost int
	sem  *semaphore.Weighted

	// dummyHash is compared against for unknown emails.
	dummyHash []byte
}

func NewPasswordHasher(cost, workers int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if workers < 1 {
		workers = 1
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("taskkeeper-dummy-password"), cost)
	return &PasswordHasher{cost: cost, sem: semaphore.NewWeighted(int64(workers)), dummyHash: dummy}
}

// Hash returns a self-describing bcrypt hash ($2a$<cost>$<salt><sum>) of
// plaintext with a fresh random salt.
func (h *PasswordHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. A malformed hash is a
// mismatch. The error is non-nil only when ctx ends before a worker is free.
func (h *PasswordHasher) Verify(ctx context.Context, plaintext, hash string) (bool, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer h.sem.Release(1)

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil, nil
}

// Burn spends the same effort as a real Verify against a fixed hash. Login
// calls it for unknown emails so response timing does not reveal whether an
// account exists.
func (h *PasswordHasher) Burn(ctx context.Context, plaintext string) error {
	_, err := h.Verify(ctx, plaintext, string(h.dummyHash))
	return err
}
