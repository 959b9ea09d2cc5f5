// Package controllers exposes the master data console over HTTP. Every
// controller registers its routes on a shared mux router and answers
// JSON envelopes.
package controllers

import "github.com/gorilla/mux"

// Controller is one mountable route group.
type Controller interface {
	// Key uniquely identifies the controller, by convention its base
	// path.
	Key() string
	Register(r *mux.Router)
}
