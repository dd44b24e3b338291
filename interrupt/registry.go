package interrupt

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/viant/uniq"
	"github.com/viant/uniq/internal/clock"
	"github.com/viant/uniq/tracing"
)

// ErrInterrupted is the cancellation cause used by Interrupt when the caller
// does not supply one.
var ErrInterrupted = errors.New("interrupt: interrupted")

// Listener is notified after a registration has been interrupted.
type Listener func(token *uniq.Token, cause error)

type entry struct {
	cancel       context.CancelCauseFunc
	registeredAt time.Time
}

// Registry correlates live operations with identity tokens so that a party
// holding only a token can interrupt the matching operation.  The registry
// keeps no reference to tokens it has released.  It is safe for concurrent
// use.
type Registry struct {
	mu       sync.RWMutex
	entries  map[*uniq.Token]*entry
	listener Listener
}

// New creates an empty registry.
func New(options ...Option) *Registry {
	r := &Registry{entries: map[*uniq.Token]*entry{}}
	for _, option := range options {
		option(r)
	}
	return r
}

// Register mints a token for an operation and derives a cancellable context
// from ctx.  The operation runs under the returned context; the returned
// token is handed to whichever party may need to interrupt it.
func (r *Registry) Register(ctx context.Context) (context.Context, *uniq.Token) {
	if ctx == nil {
		ctx = context.Background()
	}
	token := uniq.New()
	ctx, cancel := context.WithCancelCause(ctx)
	r.mu.Lock()
	r.entries[token] = &entry{cancel: cancel, registeredAt: clock.Now()}
	r.mu.Unlock()
	return ctx, token
}

// Interrupt cancels the registration identified by token with the supplied
// cause (ErrInterrupted when cause is nil) and removes it from the registry.
// It returns false when the token is unknown – never registered, already
// interrupted or already completed.
func (r *Registry) Interrupt(token *uniq.Token, cause error) bool {
	if cause == nil {
		cause = ErrInterrupted
	}
	r.mu.Lock()
	e, ok := r.entries[token]
	if ok {
		delete(r.entries, token)
	}
	r.mu.Unlock()
	if !ok {
		return false
	}
	_, span := tracing.StartSpan(context.Background(), "interrupt.interrupt")
	span.WithAttributes(map[string]string{"interrupt.token": token.String()})
	e.cancel(cause)
	tracing.EndSpan(span, nil)
	if r.listener != nil {
		r.notify(token, cause)
	}
	return true
}

// Complete releases the registration once the operation has finished.  The
// derived context is cancelled as part of the release; the listener is not
// notified.  It returns false when the token is unknown.
func (r *Registry) Complete(token *uniq.Token) bool {
	r.mu.Lock()
	e, ok := r.entries[token]
	if ok {
		delete(r.entries, token)
	}
	r.mu.Unlock()
	if !ok {
		return false
	}
	e.cancel(nil)
	return true
}

// Active returns the number of live registrations.
func (r *Registry) Active() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// RegisteredAt returns when the token's operation registered, and false when
// the token is unknown.
func (r *Registry) RegisteredAt(token *uniq.Token) (time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[token]
	if !ok {
		return time.Time{}, false
	}
	return e.registeredAt, true
}

// notify invokes the listener; a panicking listener must not take down the
// caller of Interrupt.
func (r *Registry) notify(token *uniq.Token, cause error) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("interrupt: listener panic for %v: %v", token, rec)
		}
	}()
	r.listener(token, cause)
}
