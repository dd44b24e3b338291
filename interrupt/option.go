package interrupt

// Option customises a Registry created with New.
type Option func(r *Registry)

// WithListener registers a callback notified after each interruption.  The
// listener runs outside the registry lock, so it may perform slow work
// (logging, I/O) without blocking other registrations.
func WithListener(listener Listener) Option {
	return func(r *Registry) {
		r.listener = listener
	}
}
