// Package store defines the persistence interfaces the domain services
// depend on, together with their shared error vocabulary.
package store
