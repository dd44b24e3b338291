package uniq

import (
	"fmt"
	"reflect"
)

// Token is an opaque identity handle minted by New.  It carries no payload:
// the handle's address is its identity, so two *Token values are equal
// exactly when they came out of the same New call.  Comparison is plain
// pointer equality and *Token can be used directly as a map key, which keys
// entries by allocation identity.
//
// The struct is non-zero sized on purpose: the language permits two distinct
// zero-size allocations to share an address, which would collapse separately
// minted tokens into one identity.
type Token struct {
	_ [1]byte
}

// New mints a fresh identity token, distinct from every token minted before
// or after it within the same process.
//
// New never fails, never blocks and never suspends: it performs a single
// small heap allocation and nothing else — no I/O, no locks, no shared
// counters.  It is safe to call from any number of goroutines without
// synchronisation and behaves identically under any scheduler, which is why
// it takes no context.Context.  Calls must not be memoised or hoisted:
// every call site that needs a fresh identity calls New at the point of use.
func New() *Token {
	return &Token{}
}

// Equals reports whether both handles refer to the same allocation.  It is
// equivalent to t == other and exists for call sites that read better with a
// named predicate.
func (t *Token) Equals(other *Token) bool {
	return t == other
}

// Hash returns an identity-consistent hash: the same token always hashes to
// the same value within a process, and equal tokens (the same allocation)
// hash identically.  The value has no meaning across processes and must not
// be persisted.  A nil token hashes to zero.
func (t *Token) Hash() uint64 {
	return uint64(reflect.ValueOf(t).Pointer())
}

// String returns a diagnostic representation for logs and traces.  It is not
// guaranteed unique, parseable or stable and must never be used as a
// correctness-bearing value.
func (t *Token) String() string {
	if t == nil {
		return "uniq.Token(nil)"
	}
	return fmt.Sprintf("uniq.Token(%p)", t)
}
