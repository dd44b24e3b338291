package interrupt

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/uniq"
	"github.com/viant/uniq/internal/clock"
)

func TestInterruptCancelsWithCause(t *testing.T) {
	r := New()
	ctx, token := r.Register(context.Background())
	assert.Equal(t, 1, r.Active())

	cause := errors.New("operator abort")
	assert.True(t, r.Interrupt(token, cause))
	<-ctx.Done()
	assert.ErrorIs(t, context.Cause(ctx), cause)
	assert.Equal(t, 0, r.Active())

	// the token is unknown once released
	assert.False(t, r.Interrupt(token, cause))
}

func TestInterruptDefaultsToErrInterrupted(t *testing.T) {
	r := New()
	ctx, token := r.Register(context.Background())
	assert.True(t, r.Interrupt(token, nil))
	assert.ErrorIs(t, context.Cause(ctx), ErrInterrupted)
}

func TestInterruptUnknownToken(t *testing.T) {
	r := New()
	assert.False(t, r.Interrupt(uniq.New(), nil))
	assert.False(t, r.Interrupt(nil, nil))
}

func TestInterruptIsIsolatedPerToken(t *testing.T) {
	r := New()
	ctxA, tokenA := r.Register(context.Background())
	ctxB, tokenB := r.Register(context.Background())
	assert.False(t, tokenA.Equals(tokenB))

	assert.True(t, r.Interrupt(tokenA, nil))
	<-ctxA.Done()
	select {
	case <-ctxB.Done():
		t.Fatal("unrelated registration interrupted")
	default:
	}
	assert.Equal(t, 1, r.Active())
}

func TestCompleteReleasesWithoutNotifying(t *testing.T) {
	var notified int
	r := New(WithListener(func(*uniq.Token, error) { notified++ }))
	ctx, token := r.Register(context.Background())

	assert.True(t, r.Complete(token))
	assert.Equal(t, 0, r.Active())
	assert.Equal(t, 0, notified)
	<-ctx.Done() // release cancels the derived context

	assert.False(t, r.Complete(token))
}

func TestListenerNotifiedOnInterrupt(t *testing.T) {
	var got *uniq.Token
	var gotCause error
	r := New(WithListener(func(token *uniq.Token, cause error) {
		got = token
		gotCause = cause
	}))
	_, token := r.Register(context.Background())
	assert.True(t, r.Interrupt(token, nil))
	assert.Same(t, token, got)
	assert.ErrorIs(t, gotCause, ErrInterrupted)
}

func TestRegisterDerivesFromParent(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	r := New()
	ctx, token := r.Register(parent)
	cancel()
	<-ctx.Done()
	// the entry stays until explicitly released
	assert.True(t, r.Complete(token))
}

func TestRegisteredAt(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	previous := clock.NowFunc
	clock.NowFunc = func() time.Time { return fixed }
	defer func() { clock.NowFunc = previous }()

	r := New()
	_, token := r.Register(context.Background())
	at, ok := r.RegisteredAt(token)
	assert.True(t, ok)
	assert.Equal(t, fixed, at)

	_, ok = r.RegisteredAt(uniq.New())
	assert.False(t, ok)
}

func TestConcurrentRegistrations(t *testing.T) {
	r := New()
	const workers = 16
	const perWorker = 100
	tokens := make(chan *uniq.Token, workers*perWorker)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				_, token := r.Register(context.Background())
				tokens <- token
			}
		}()
	}
	wg.Wait()
	close(tokens)
	seen := map[*uniq.Token]bool{}
	for token := range tokens {
		seen[token] = true
	}
	assert.Len(t, seen, workers*perWorker)
	assert.Equal(t, workers*perWorker, r.Active())
}
