/*
Package datastore is the session-binding core of a datastore abstraction
layer: it manages the lifecycle of sessions (unit-of-work handles to an
underlying key-value store) and binds each one to the calling execution
context so that framework code elsewhere can retrieve "the current session"
without threading a session parameter around.

A Datastore owns a SessionFactory (the backend strategy), a mapping.Context
with entity metadata, and an ordered EntityInterceptor chain. Connect asks the
factory for a session, installs the interceptor chain, and returns a derived
context with the session bound:

	ds, _ := datastore.New(memory.NewFactory(), mapping.NewContext())
	ctx, session, err := ds.Connect(context.Background())

Later code in the same context chain retrieves the session without a
Datastore reference:

	session, err := datastore.RetrieveSession(ctx)

Child goroutines handed the bound context inherit the binding; a context that
never connected fails with errors.ErrConnectionNotFound.

Backends:
  - memory: in-memory sessions for testing and prototyping
  - redisstore: Redis-backed sessions (go-redis)
  - ddb: DynamoDB-backed sessions (aws-sdk-go-v2)
*/
package datastore
