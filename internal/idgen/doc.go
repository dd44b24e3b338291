// Package idgen wraps the UUID generator used for diagnostic names so that
// it can be stubbed in tests.  Identifiers it produces are informative only;
// identity and correlation always live in uniq.Token, never in these
// strings.
package idgen
