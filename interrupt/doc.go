// Package interrupt provides a cancellation registry keyed by token
// identity.  An operation registers itself and receives a derived context
// plus a uniq.Token; any party holding that token can later interrupt the
// operation without knowing anything else about it.  Interrupting one token
// never affects another registration.
package interrupt
