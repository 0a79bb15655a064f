// Package service contains the domain service layer: the rules that keep the
// driver/car relationship consistent, enforce uniqueness across concurrent
// writers, perform soft deletion, and guarantee that driver registration
// either fully succeeds or fails with a classified error.
package service
