package uniq_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/uniq"
)

func TestNewMintsDistinctTokens(t *testing.T) {
	t1 := uniq.New()
	t2 := uniq.New()
	assert.False(t, t1 == t2)
	assert.False(t, t1.Equals(t2))
	assert.False(t, t2.Equals(t1))
	assert.True(t, t1.Equals(t1))
	assert.True(t, t2.Equals(t2))
}

func TestHashIsDeterministic(t *testing.T) {
	token := uniq.New()
	first := token.Hash()
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, token.Hash())
	}
	assert.Zero(t, (*uniq.Token)(nil).Hash())
}

func TestBulkDistinctness(t *testing.T) {
	const n = 10000
	seen := make(map[*uniq.Token]bool, n)
	for i := 0; i < n; i++ {
		seen[uniq.New()] = true
	}
	assert.Len(t, seen, n)
}

func TestConcurrentDistinctness(t *testing.T) {
	const workers = 8
	const perWorker = 2000
	results := make(chan *uniq.Token, workers*perWorker)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				results <- uniq.New()
			}
		}()
	}
	wg.Wait()
	close(results)
	seen := map[*uniq.Token]bool{}
	for token := range results {
		seen[token] = true
	}
	assert.Len(t, seen, workers*perWorker)
}

// TestTightLoopMinting exercises minting as a constant-cost primitive: a
// million consecutive calls must complete without an error path and each
// token must differ from its predecessor.
func TestTightLoopMinting(t *testing.T) {
	last := uniq.New()
	for i := 0; i < 1_000_000; i++ {
		token := uniq.New()
		if token == last {
			t.Fatalf("token %d equals its predecessor", i)
		}
		last = token
	}
}

func TestStringIsDiagnosticOnly(t *testing.T) {
	token := uniq.New()
	assert.NotEmpty(t, token.String())
	assert.Equal(t, "uniq.Token(nil)", (*uniq.Token)(nil).String())
}
