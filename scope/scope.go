package scope

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/viant/uniq"
	"github.com/viant/uniq/internal/clock"
	"github.com/viant/uniq/internal/idgen"
	"github.com/viant/uniq/tracing"
)

// ErrClosed is returned when an operation targets an already closed scope.
var ErrClosed = errors.New("scope: already closed")

// Finalizer releases a resource attached to a scope.  Finalizers registered
// via Defer run when the scope closes, in LIFO order.
type Finalizer func(ctx context.Context) error

// Scope represents one node of a resource-scope tree.  Its identity is the
// uniq.Token minted at creation; the name is diagnostic only.  A Scope is
// safe for concurrent use.
type Scope struct {
	token  *uniq.Token
	name   string
	parent *Scope

	mu         sync.Mutex
	children   map[*uniq.Token]*Scope
	order      []*uniq.Token
	finalizers []Finalizer
	closedAt   *time.Time
}

// New creates a root scope.
func New(options ...Option) *Scope {
	s := &Scope{
		token:    uniq.New(),
		children: map[*uniq.Token]*Scope{},
	}
	for _, option := range options {
		option(s)
	}
	if s.name == "" {
		s.name = "scope-" + idgen.New()
	}
	return s
}

// Token returns the scope's identity token.  Collaborators correlate scopes
// through this token only.
func (s *Scope) Token() *uniq.Token {
	return s.token
}

// Name returns the diagnostic name of the scope.
func (s *Scope) Name() string {
	return s.name
}

// Child opens a sub-scope registered under this scope.  It fails with
// ErrClosed when the receiver has already been closed.
func (s *Scope) Child(options ...Option) (*Scope, error) {
	child := &Scope{
		token:    uniq.New(),
		children: map[*uniq.Token]*Scope{},
		parent:   s,
	}
	for _, option := range options {
		option(child)
	}
	if child.name == "" {
		child.name = s.name + "/" + idgen.New()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closedAt != nil {
		return nil, ErrClosed
	}
	s.children[child.token] = child
	s.order = append(s.order, child.token)
	return child, nil
}

// Defer registers fn to run when the scope closes.  Finalizers run in LIFO
// order.  Registering on a closed scope fails with ErrClosed and the
// finalizer does not run.
func (s *Scope) Defer(fn Finalizer) error {
	if fn == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closedAt != nil {
		return ErrClosed
	}
	s.finalizers = append(s.finalizers, fn)
	return nil
}

// Closed reports whether the scope has been closed.
func (s *Scope) Closed() bool {
	s.mu.Lock()
	closed := s.closedAt != nil
	s.mu.Unlock()
	return closed
}

// Close closes child scopes (most recently opened first), then runs this
// scope's finalizers in LIFO order.  Every child and finalizer runs even
// after a failure; the first error encountered is returned.  Close is
// idempotent – a second call is a no-op returning nil.
func (s *Scope) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closedAt != nil {
		s.mu.Unlock()
		return nil
	}
	now := clock.Now()
	s.closedAt = &now
	children := make([]*Scope, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		if child, ok := s.children[s.order[i]]; ok {
			children = append(children, child)
		}
	}
	finalizers := s.finalizers
	s.children = map[*uniq.Token]*Scope{}
	s.order = nil
	s.finalizers = nil
	s.mu.Unlock()

	ctx, span := tracing.StartSpan(ctx, "scope.close")
	span.WithAttributes(map[string]string{
		"scope.name":  s.name,
		"scope.token": s.token.String(),
	})
	var err error
	for _, child := range children {
		if cErr := child.Close(ctx); cErr != nil && err == nil {
			err = cErr
		}
	}
	for i := len(finalizers) - 1; i >= 0; i-- {
		if fErr := finalizers[i](ctx); fErr != nil && err == nil {
			err = fmt.Errorf("scope %v: %w", s.name, fErr)
		}
	}
	s.detach()
	tracing.EndSpan(span, err)
	return err
}

// detach removes this scope from its parent's registry, if still present.
func (s *Scope) detach() {
	parent := s.parent
	if parent == nil {
		return
	}
	parent.mu.Lock()
	delete(parent.children, s.token)
	parent.mu.Unlock()
}

// Lookup returns the scope identified by token – the receiver itself or any
// live descendant.  Comparison is token identity; closed scopes are no
// longer reachable through their former parent.
func (s *Scope) Lookup(token *uniq.Token) (*Scope, bool) {
	if token == nil {
		return nil, false
	}
	if s.token == token {
		return s, true
	}
	s.mu.Lock()
	children := make([]*Scope, 0, len(s.children))
	for _, child := range s.children {
		children = append(children, child)
	}
	s.mu.Unlock()
	for _, child := range children {
		if found, ok := child.Lookup(token); ok {
			return found, true
		}
	}
	return nil, false
}
