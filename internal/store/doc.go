// Package store defines the persistence interfaces for the application's
// entities and the sentinel errors their implementations return. The
// interfaces deliberately collapse "does not exist" and "exists but is
// owned by another user" into a single not-found outcome so that callers
// cannot learn about other users' tasks.
package store
