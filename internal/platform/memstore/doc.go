// Package memstore provides in-memory implementations of the store
// interfaces. All records live in process memory guarded by a mutex;
// store lifetime equals process lifetime and nothing is persisted.
// IDs are assigned monotonically and never reused.
package memstore
