package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 2)
	ctx := context.Background()

	first, err := h.Hash(ctx, "test-password")
	require.NoError(t, err)
	second, err := h.Hash(ctx, "test-password")
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "salts should differ")

	for _, hash := range []string{first, second} {
		ok, err := h.Verify(ctx, "test-password", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := h.Verify(ctx, "wrong-password", first)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasher_UsesConfiguredCost(t *testing.T) {
	h := NewHasher(bcrypt.MinCost+1, 1)
	hash, err := h.Hash(context.Background(), "test-password")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)
}

func TestNewHasher_InvalidCostFallsBack(t *testing.T) {
	assert.Equal(t, DefaultCost, NewHasher(0, 1).cost)
	assert.Equal(t, DefaultCost, NewHasher(bcrypt.MaxCost+1, 1).cost)
}

func TestHasher_VerifyMalformedHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 1)
	ok, err := h.Verify(context.Background(), "test-password", "not-a-bcrypt-hash")
	require.Error(t, err)
	assert.False(t, ok)
}

func TestHasher_CancelledWhileWaiting(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 1)
	require.NoError(t, h.sem.Acquire(context.Background(), 1))
	defer h.sem.Release(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Hash(ctx, "test-password")
	require.ErrorIs(t, err, context.Canceled)
	_, err = h.Verify(ctx, "test-password", "$2a$04$abc")
	require.ErrorIs(t, err, context.Canceled)
}

func TestHasher_ConcurrentUse(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 2)
	ctx := context.Background()
	hash, err := h.Hash(ctx, "test-password")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := h.Verify(ctx, "test-password", hash)
			if err == nil && !ok {
				err = assert.AnError
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}
