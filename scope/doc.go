// Package scope provides resource scopes keyed by token identity.  A scope
// owns the cleanup actions registered against it and the sub-scopes opened
// under it; closing a scope closes the sub-scopes first (most recent first)
// and then runs its own finalizers in LIFO order.  The scope's uniq.Token is
// the correlation key collaborators use to refer to it – never its name,
// which is diagnostic only.
package scope
