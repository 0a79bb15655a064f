// Package mocks provides hand-written mock implementations of the store
// interfaces for testing. The mocks carry an in-memory default behavior and
// per-method function fields for overriding it.
package mocks
