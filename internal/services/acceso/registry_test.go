// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package acceso

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChallengeRegistry_PutGet(t *testing.T) {
	r := newChallengeRegistry()

	r.put("id-1", &challenge{NIT: "900123456", ExpiresAt: time.Now().Add(time.Minute)})

	c, ok := r.get("id-1")
	require.True(t, ok)
	assert.Equal(t, "900123456", c.NIT)
}

func TestChallengeRegistry_ExpiredEntryRemovedOnGet(t *testing.T) {
	r := newChallengeRegistry()

	r.put("id-1", &challenge{NIT: "900123456", ExpiresAt: time.Now().Add(-time.Second)})

	_, ok := r.get("id-1")
	assert.False(t, ok)

	r.mu.Lock()
	_, stillThere := r.challenges["id-1"]
	r.mu.Unlock()
	assert.False(t, stillThere)
}

func TestChallengeRegistry_Remove(t *testing.T) {
	r := newChallengeRegistry()

	r.put("id-1", &challenge{NIT: "900123456", ExpiresAt: time.Now().Add(time.Minute)})
	r.remove("id-1")

	_, ok := r.get("id-1")
	assert.False(t, ok)
}

func TestResetTokenRegistry_ConsumeIsSingleUse(t *testing.T) {
	r := newResetTokenRegistry()

	r.put("token-1", "900123456", time.Minute)

	nit, ok := r.consume("token-1")
	require.True(t, ok)
	assert.Equal(t, "900123456", nit)

	_, ok = r.consume("token-1")
	assert.False(t, ok)
}

func TestResetTokenRegistry_ConcurrentConsumeOneWinner(t *testing.T) {
	r := newResetTokenRegistry()
	r.put("token-1", "900123456", time.Minute)

	const attempts = 32
	results := make(chan bool, attempts)
	var wg sync.WaitGroup
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := r.consume("token-1")
			results <- ok
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for ok := range results {
		if ok {
			wins++
		}
	}
	assert.Equal(t, 1, wins)
}

func TestResetTokenRegistry_ExpiredToken(t *testing.T) {
	r := newResetTokenRegistry()

	r.put("token-1", "900123456", -time.Second)

	_, ok := r.consume("token-1")
	assert.False(t, ok)
}

func TestResetTokenRegistry_PeekLeavesTokenInPlace(t *testing.T) {
	r := newResetTokenRegistry()

	r.put("token-1", "900123456", time.Minute)

	nit, ok := r.peek("token-1")
	require.True(t, ok)
	assert.Equal(t, "900123456", nit)

	nit, ok = r.consume("token-1")
	require.True(t, ok)
	assert.Equal(t, "900123456", nit)
}

func TestResetTokenRegistry_PeekExpired(t *testing.T) {
	r := newResetTokenRegistry()

	r.put("token-1", "900123456", -time.Second)

	_, ok := r.peek("token-1")
	assert.False(t, ok)
}

func TestResetTokenRegistry_ManyTokens(t *testing.T) {
	r := newResetTokenRegistry()

	for i := range 10 {
		r.put(fmt.Sprintf("token-%d", i), fmt.Sprintf("nit-%d", i), time.Minute)
	}

	nit, ok := r.consume("token-7")
	require.True(t, ok)
	assert.Equal(t, "nit-7", nit)
}
