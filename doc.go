// Package uniq mints opaque identity tokens.
//
// A token's only semantic content is "this is a distinct allocation": two
// tokens are equal exactly when they are the same allocation, never by
// structural comparison.  Higher-level runtime facilities build correlation
// and comparison on top of that guarantee via the sub-packages:
//
//   - scope     – resource scopes keyed by token identity
//   - interrupt – cancellation registry correlating live operations to tokens
//   - tracing   – OpenTelemetry instrumentation shared by both
//
// Minting is a plain synchronous call:
//
//	token := uniq.New()
//	other := uniq.New()
//	_ = token == other // always false
//
// Tokens are in-memory and process-local.  They carry no payload and are not
// meant to be serialised: an encoded-then-decoded token is a different
// allocation and loses the uniqueness guarantee relative to tokens minted in
// another process.
package uniq
