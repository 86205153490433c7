/*
Package errors provides semantic error types for the datastore layer.

Two kinds of failure surface from this module:

  - Connection errors: ErrConnectionNotFound when no session is bound to the
    calling context, and ErrConnectionFailed when a backend cannot create a
    session. Both are recoverable by the caller.
  - Entity errors: ErrNotFound, ErrAlreadyExists and ErrInvalidInput, raised
    by session implementations and registries.

All typed errors implement Is so they match their sentinel with errors.Is;
the Is* helpers wrap the common checks:

	session, err := datastore.RetrieveSession(ctx)
	if errors.IsConnectionNotFound(err) {
	    // connect first, then retry
	}
*/
package errors
